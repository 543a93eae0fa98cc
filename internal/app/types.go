package app

type ValidateRequest struct {
	SchemaPath string
}

type ValidateResult struct {
	Protocol string
	Version  string
	Messages int
}

type GenerateRequest struct {
	SchemaPath string
	OutputDir  string
	Lang       string
}

type GenerateResult struct {
	Protocol  string
	Namespace string
	OutputDir string
	Artifacts []string
}

type GenerateBatchRequest struct {
	SchemaDir string
	OutputDir string
	Lang      string
}

type GenerateBatchResult struct {
	Schemas   int
	Generated []GenerateResult
}

type InspectRequest struct {
	SchemaPath string
}

type InspectEnumSummary struct {
	Name   string
	Values int
	Width  int
}

type InspectMessageSummary struct {
	Name          string
	Fields        int
	Groups        int
	FixedBytes    int
	PresenceWidth int
	HasOptional   bool
}

type InspectResult struct {
	Protocol  string
	Version   string
	Namespace string
	Enums     []InspectEnumSummary
	Messages  []InspectMessageSummary
}
