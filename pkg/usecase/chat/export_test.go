package chat

var (
	AssembleContextForTest = assembleContext
	BuildPromptForTest     = buildPrompt
	TruncatePreviewForTest = truncatePreview
)
