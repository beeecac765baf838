package capability

// Prerequisite is another capability that must be installed first. Presence
// is judged by Path (slash-separated, relative to the target root) so that a
// hand-installed prerequisite counts too.
type Prerequisite struct {
	Capability string
	Path       string
}

// Option configures a Template or Workflow.
type Option func(*settings)

type settings struct {
	version  string
	requires []Prerequisite
}

// WithVersion pins the version recorded in state on install.
func WithVersion(v string) Option {
	return func(s *settings) { s.version = v }
}

// WithRequires adds prerequisites checked during preflight. For reviews it
// replaces the default review host requirement.
func WithRequires(p ...Prerequisite) Option {
	return func(s *settings) { s.requires = append(s.requires, p...) }
}

func applyOptions(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
