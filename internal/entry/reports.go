package entry

import (
	"context"
	"fmt"
	"maps"
	"time"

	"puppetwash/internal/formatting"
	"puppetwash/internal/puppetdb"
	"puppetwash/internal/query"
)

const resourceReports = "reports"

// ReportsCollection lists the reports of a node.
type ReportsCollection struct {
	env      Env
	instance string
	certname string
}

// NewReportsCollection returns the reports collection of certname.
func NewReportsCollection(env Env, instance, certname string) *ReportsCollection {
	return &ReportsCollection{env: env, instance: instance, certname: certname}
}

func (r *ReportsCollection) Name() string        { return ReportsName }
func (r *ReportsCollection) Kind() Kind          { return KindReports }
func (r *ReportsCollection) ListMode() FetchMode { return Lazy }

func (r *ReportsCollection) State() State {
	return newState(KindReports, "node", r.certname, "instance", r.instance, "config", r.env.stateConfig(r.instance))
}

func (r *ReportsCollection) filter() query.Expr {
	return query.Extract(reportMetadataFields, query.Equals("certname", r.certname))
}

// List queries the metadata fields of every report of the node.
// Reports sharing an end_time get the start of their hash appended to their name.
func (r *ReportsCollection) List(ctx context.Context) ([]Entry, error) {
	resp, err := r.env.fetch(ctx, r.instance, resourceReports, r.filter())
	if err != nil {
		return nil, err
	}
	rows, err := resp.Records()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		if err := validateReportMetadata(row); err != nil {
			return nil, &puppetdb.MalformedResponseError{
				Resource: resourceReports,
				Reason:   fmt.Sprintf("row %d: %v", i, err),
			}
		}
		seen[row["end_time"].(string)]++
	}

	children := make([]Entry, 0, len(rows))
	for _, row := range rows {
		report, err := newReportFromRow(r.env, r.instance, r.certname, row, seen[row["end_time"].(string)] > 1)
		if err != nil {
			return nil, err
		}
		children = append(children, report)
	}
	return children, nil
}

// Report is one configuration run of a node, identified by its hash.
type Report struct {
	env      Env
	instance string
	certname string
	hash     string
	name     string
	mtime    *time.Time
	metadata map[string]any
}

// newReportFromRow builds a report from a validated listing row.
func newReportFromRow(env Env, instance, certname string, row map[string]any, disambiguate bool) (*Report, error) {
	endTime := row["end_time"].(string)
	hash := row["hash"].(string)

	mtime, err := time.Parse(time.RFC3339, endTime)
	if err != nil {
		return nil, &puppetdb.MalformedResponseError{
			Resource: resourceReports,
			Reason:   fmt.Sprintf("report %s has unparseable end_time %q", hash, endTime),
		}
	}

	name := endTime
	if disambiguate {
		name = endTime + "-" + shortHash(hash)
	}

	return &Report{
		env:      env,
		instance: instance,
		certname: certname,
		hash:     hash,
		name:     name,
		mtime:    &mtime,
		metadata: maps.Clone(row),
	}, nil
}

// NewReport returns the report with the given hash. It carries no metadata or
// attributes; those only come from a listing.
func NewReport(env Env, instance, certname, hash, name string) *Report {
	if name == "" {
		name = hash
	}
	return &Report{env: env, instance: instance, certname: certname, hash: hash, name: name}
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func (r *Report) Name() string        { return r.name }
func (r *Report) Kind() Kind          { return KindReport }
func (r *Report) ReadMode() FetchMode { return Lazy }

// Hash returns the report's content hash.
func (r *Report) Hash() string { return r.hash }

func (r *Report) State() State {
	return newState(KindReport, "node", r.certname, "instance", r.instance, "hash", r.hash, "config", r.env.stateConfig(r.instance))
}

// Metadata returns the report's listing row.
func (r *Report) Metadata() map[string]any {
	return maps.Clone(r.metadata)
}

// Attributes returns the report's mtime, parsed from end_time.
func (r *Report) Attributes() Attributes {
	return Attributes{Mtime: r.mtime}
}

func (r *Report) filter() query.Expr {
	return query.And(
		query.Equals("certname", r.certname),
		query.Equals("hash", r.hash),
	)
}

// LoadMetadata returns the report's metadata fields, querying for them when
// the report was rebuilt from state.
func (r *Report) LoadMetadata(ctx context.Context) (map[string]any, error) {
	if r.metadata != nil {
		return r.Metadata(), nil
	}
	row, err := r.fetchOne(ctx, query.Extract(reportMetadataFields, r.filter()))
	if err != nil {
		return nil, err
	}
	if err := validateReportMetadata(row); err != nil {
		return nil, &puppetdb.MalformedResponseError{Resource: resourceReports, Reason: err.Error()}
	}
	return row, nil
}

// Read fetches the full report and renders it.
func (r *Report) Read(ctx context.Context) ([]byte, error) {
	row, err := r.fetchOne(ctx, r.filter())
	if err != nil {
		return nil, err
	}
	return formatting.Readable(row), nil
}

func (r *Report) fetchOne(ctx context.Context, filter query.Expr) (map[string]any, error) {
	resp, err := r.env.fetch(ctx, r.instance, resourceReports, filter)
	if err != nil {
		return nil, err
	}
	rows, err := resp.Records()
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, &puppetdb.MalformedResponseError{
			Resource: resourceReports,
			Reason:   fmt.Sprintf("expected exactly one report with hash %s, got %d", r.hash, len(rows)),
		}
	}
	return rows[0], nil
}
