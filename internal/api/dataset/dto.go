package dataset

type SubmitSampleRequest struct {
	Label string `json:"label" validate:"required"`
}

type DatasetSample struct {
	Class string `json:"class"`
	Key   string `json:"key"`
	URL   string `json:"url"`
}

type SampleResponse struct {
	Data DatasetSample `json:"data"`
}

type ListSamplesResponse struct {
	Class   string          `json:"class"`
	Count   int             `json:"count"`
	Samples []DatasetSample `json:"samples"`
}

type ClassSummary struct {
	Class    string `json:"class"`
	Count    int    `json:"count"`
	Capacity int    `json:"capacity"`
}

type SummaryResponse struct {
	Classes []ClassSummary `json:"classes"`
	Missing []string       `json:"missing,omitempty"`
	Total   int            `json:"total"`
}
