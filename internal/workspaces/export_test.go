package workspaces

var (
	ParseIDs          = parseIDs
	BuildUpdate       = buildUpdate
	LinkStudyGuideSQL = linkStudyGuideSQL
)
