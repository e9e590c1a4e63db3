package entry

import (
	"fmt"

	"puppetwash/pkg/logging"
)

// Reconstruct rebuilds the entry described by state. name is the label
// the host knows the entry by; kinds whose name is fixed or part of their
// state ignore it. The configuration comes from the state's config field;
// only env's client factory is used.
func Reconstruct(env Env, name string, state State) (Entry, error) {
	spec, ok := TypeOf(state.Kind)
	if !ok {
		return nil, &StateError{Kind: state.Kind, Reason: "unknown kind"}
	}

	fields := make(map[string]string, len(spec.StateFields))
	for _, field := range spec.StateFields {
		v, err := state.require(field)
		if err != nil {
			return nil, err
		}
		fields[field] = v
	}

	cfg, err := decodeStateConfig(state.Kind, fields["config"])
	if err != nil {
		return nil, err
	}
	env = Env{Config: cfg, NewClient: env.NewClient}

	if instance, ok := fields["instance"]; ok {
		if _, configured := env.Config.Instance(instance); !configured {
			return nil, fmt.Errorf("%w: %s", ErrUnknownInstance, instance)
		}
	}

	logging.Debug("Entry", "Reconstructing %s %q", state.Kind, name)

	switch state.Kind {
	case KindRoot:
		return NewRoot(env), nil
	case KindInstance:
		return NewInstance(env, fields["instance"]), nil
	case KindNodes:
		return NewNodesCollection(env, fields["instance"]), nil
	case KindNode:
		return NewNode(env, fields["instance"], fields["node"], nil), nil
	case KindCatalog:
		return NewCatalog(env, fields["instance"], fields["node"]), nil
	case KindFacts:
		return NewFactsCollection(env, fields["instance"], fields["node"]), nil
	case KindFact:
		return newFactFromJSON(env, fields["name"], fields["value"], fields["node"], fields["instance"])
	case KindReports:
		return NewReportsCollection(env, fields["instance"], fields["node"]), nil
	case KindReport:
		return NewReport(env, fields["instance"], fields["node"], fields["hash"], name), nil
	default:
		return nil, &StateError{Kind: state.Kind, Reason: "unknown kind"}
	}
}

// ReconstructEncoded decodes an encoded state and rebuilds its entry.
func ReconstructEncoded(env Env, name, encoded string) (Entry, error) {
	state, err := DecodeState(encoded)
	if err != nil {
		return nil, err
	}
	return Reconstruct(env, name, state)
}
