package domain

import "strings"

// Classification is the outcome of inspecting a commit message.
type Classification struct {
	Kind               CommitKind
	IsBreakingChange   bool
	AffectsSecurity    bool
	AffectsPerformance bool
}

var kindPrefixes = map[string]CommitKind{
	"feat":     CommitKindFeature,
	"feature":  CommitKindFeature,
	"fix":      CommitKindBugfix,
	"bugfix":   CommitKindBugfix,
	"hotfix":   CommitKindBugfix,
	"sec":      CommitKindSecurity,
	"security": CommitKindSecurity,
	"perf":     CommitKindPerformance,
	"refactor": CommitKindRefactor,
	"docs":     CommitKindDocs,
	"doc":      CommitKindDocs,
	"test":     CommitKindTest,
	"tests":    CommitKindTest,
	"chore":    CommitKindChore,
	"build":    CommitKindChore,
	"ci":       CommitKindChore,
}

var securityWords = []string{"security", "vulnerability", "cve-", "xss", "injection", "exploit"}
var performanceWords = []string{"performance", "speed up", "optimize", "optimise", "faster", "latency"}

// ClassifyMessage derives a commit classification from its message. Used by
// ingestion when the collector supplies no explicit kind.
func ClassifyMessage(message string) Classification {
	lower := strings.ToLower(message)

	c := Classification{Kind: CommitKindOther}

	// Conventional-commit prefix, e.g. "feat(parser)!: ..." or "fix: ...".
	head := lower
	if i := strings.IndexAny(head, "\n"); i >= 0 {
		head = head[:i]
	}
	if i := strings.Index(head, ":"); i > 0 {
		prefix := head[:i]
		// The ! marker sits after the scope, e.g. "fix(auth)!:", so it
		// has to be checked before the scope is stripped.
		if strings.HasSuffix(prefix, "!") {
			c.IsBreakingChange = true
			prefix = strings.TrimSuffix(prefix, "!")
		}
		if j := strings.Index(prefix, "("); j >= 0 {
			prefix = prefix[:j]
		}
		if kind, ok := kindPrefixes[strings.TrimSpace(prefix)]; ok {
			c.Kind = kind
		}
	}

	if strings.Contains(lower, "breaking change") {
		c.IsBreakingChange = true
	}

	if c.Kind == CommitKindOther {
		for _, w := range securityWords {
			if strings.Contains(lower, w) {
				c.Kind = CommitKindSecurity
				break
			}
		}
	}
	if c.Kind == CommitKindOther {
		for _, w := range performanceWords {
			if strings.Contains(lower, w) {
				c.Kind = CommitKindPerformance
				break
			}
		}
	}

	c.AffectsSecurity, c.AffectsPerformance = c.Kind.Flags()

	return c
}
