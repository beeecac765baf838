package registry

import "github.com/agentx-labs/capkit/internal/capability"

// builtin lists every capability shipped with capkit. Adding a capability
// means adding its content under bundled/ and a line here.
func builtin() []capability.Capability {
	ci := capability.Prerequisite{Capability: "ci", Path: ".github/workflows/ci.yml"}

	return []capability.Capability{
		// Skills.
		capability.NewSkill("code-search",
			"Locate definitions, call sites and configuration before editing code"),
		capability.NewSkill("changelog-writer",
			"Draft CHANGELOG entries from merged changes"),

		// Reminders.
		capability.NewReminder("commit-hygiene",
			"Keep commits small, buildable and well described"),
		capability.NewReminder("test-first",
			"Write a failing test before changing behaviour"),

		// Reviews. Each requires the review-runner workflow.
		capability.NewReview("security-review",
			"Review changes for injection, secret handling and authorization mistakes"),
		capability.NewReview("go-style-review",
			"Review Go changes for error wrapping, naming and package layout"),

		// Workflows.
		capability.NewWorkflow("ci",
			"Run the test suite on every push and pull request",
			[]capability.Artifact{capability.File(".github/workflows/ci.yml")}),
		capability.NewWorkflow(capability.ReviewHost,
			"Run installed reviews against pull requests",
			[]capability.Artifact{capability.File(capability.ReviewHostPath)}),
		capability.NewWorkflow("issue-triage",
			"Label new issues from keyword rules",
			[]capability.Artifact{
				capability.File(".github/workflows/issue-triage.yml"),
				capability.Dir(".github/scripts/issue-triage"),
			},
			capability.WithRequires(ci)),
		capability.NewWorkflow("agent-docs",
			"Seed architecture and convention notes for coding agents",
			[]capability.Artifact{
				capability.File("docs/agents/ARCHITECTURE.md"),
				capability.File("docs/agents/CONVENTIONS.md"),
			}),
	}
}
