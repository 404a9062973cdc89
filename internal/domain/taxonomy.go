package domain

// CommitKind classifies an ingested commit. The set is closed; extending it
// is a schema change, not a free-text write.
type CommitKind string

const (
	CommitKindFeature     CommitKind = "feature"
	CommitKindBugfix      CommitKind = "bugfix"
	CommitKindSecurity    CommitKind = "security"
	CommitKindPerformance CommitKind = "performance"
	CommitKindRefactor    CommitKind = "refactor"
	CommitKindDocs        CommitKind = "docs"
	CommitKindTest        CommitKind = "test"
	CommitKindChore       CommitKind = "chore"
	CommitKindOther       CommitKind = "other"
)

func (k CommitKind) Valid() bool {
	switch k {
	case CommitKindFeature, CommitKindBugfix, CommitKindSecurity,
		CommitKindPerformance, CommitKindRefactor, CommitKindDocs,
		CommitKindTest, CommitKindChore, CommitKindOther:
		return true
	}
	return false
}

// Flags reports the boolean commit flags implied by the kind. The breaking
// flag is never implied by kind alone; it comes from the commit message
// marker at classification time.
func (k CommitKind) Flags() (security, performance bool) {
	return k == CommitKindSecurity, k == CommitKindPerformance
}

// PostKind describes the content category of a generated post.
type PostKind string

const (
	PostKindFeature     PostKind = "feature"
	PostKindBugfix      PostKind = "bugfix"
	PostKindSecurity    PostKind = "security"
	PostKindPerformance PostKind = "performance"
	PostKindGeneral     PostKind = "general"
)

func (k PostKind) Valid() bool {
	switch k {
	case PostKindFeature, PostKindBugfix, PostKindSecurity,
		PostKindPerformance, PostKindGeneral:
		return true
	}
	return false
}

// PostTemplate describes how a post is rendered. It is an independent axis
// from PostKind: a security post may still use the general template.
type PostTemplate string

const (
	PostTemplateFeature     PostTemplate = "feature"
	PostTemplateBugfix      PostTemplate = "bugfix"
	PostTemplateSecurity    PostTemplate = "security"
	PostTemplatePerformance PostTemplate = "performance"
	PostTemplateGeneral     PostTemplate = "general"
)

func (t PostTemplate) Valid() bool {
	switch t {
	case PostTemplateFeature, PostTemplateBugfix, PostTemplateSecurity,
		PostTemplatePerformance, PostTemplateGeneral:
		return true
	}
	return false
}

// FileStatus is the per-file change status within a commit.
type FileStatus string

const (
	FileStatusAdded    FileStatus = "added"
	FileStatusModified FileStatus = "modified"
	FileStatusRemoved  FileStatus = "removed"
	FileStatusRenamed  FileStatus = "renamed"
)

func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusAdded, FileStatusModified, FileStatusRemoved, FileStatusRenamed:
		return true
	}
	return false
}
