package navigation

import "cv-builder-be/internal/entity"

// stepMeta holds display metadata for one wizard step.
type stepMeta struct {
	Label       string
	URL         string
	Icon        string
	Description string
}

var stepMetadata = map[entity.Step]stepMeta{
	entity.StepUpload:     {Label: "Upload CV", URL: "/upload", Icon: "upload", Description: "Upload your resume to get started"},
	entity.StepProcessing: {Label: "Processing", URL: "/processing", Icon: "loader", Description: "We are reading your resume"},
	entity.StepAnalysis:   {Label: "Analysis", URL: "/analysis", Icon: "chart", Description: "ATS compatibility and skill analysis"},
	entity.StepKeywords:   {Label: "Keywords", URL: "/keywords", Icon: "tag", Description: "Keyword optimization for job targeting"},
	entity.StepFeatures:   {Label: "Features", URL: "/features", Icon: "sparkles", Description: "Pick AI enhancements for your CV"},
	entity.StepTemplates:  {Label: "Templates", URL: "/templates", Icon: "layout", Description: "Choose a presentation template"},
	entity.StepPreview:    {Label: "Preview", URL: "/preview", Icon: "eye", Description: "Review your enhanced CV"},
	entity.StepResults:    {Label: "Results", URL: "/results", Icon: "check", Description: "Your generated CV and extras"},
	entity.StepCompleted:  {Label: "Done", URL: "/completed", Icon: "flag", Description: "All done"},
}

// stepPrerequisites declares which steps must be completed before a step
// becomes accessible. Keywords branches off analysis.
var stepPrerequisites = map[entity.Step][]entity.Step{
	entity.StepUpload:     {},
	entity.StepProcessing: {entity.StepUpload},
	entity.StepAnalysis:   {entity.StepProcessing},
	entity.StepKeywords:   {entity.StepAnalysis},
	entity.StepFeatures:   {entity.StepAnalysis},
	entity.StepTemplates:  {entity.StepFeatures},
	entity.StepPreview:    {entity.StepTemplates},
	entity.StepResults:    {entity.StepPreview},
	entity.StepCompleted:  {entity.StepResults},
}

func StepURL(s entity.Step) string {
	if m, ok := stepMetadata[s]; ok {
		return m.URL
	}
	return "/upload"
}

func StepLabel(s entity.Step) string {
	if m, ok := stepMetadata[s]; ok {
		return m.Label
	}
	return string(s)
}

func Prerequisites(s entity.Step) []entity.Step {
	return stepPrerequisites[s]
}
