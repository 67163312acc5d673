package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	OutputDir string
	GroupDB   string
	GUIMode   bool

	// Article input
	ArticleFile string
	ArticleURL  string

	// Picking
	SelectWords []string
	Phrases     []string

	// Actions
	Define          bool
	ExportFile      string
	SaveGroup       string
	ListGroups      bool
	ImportGroup     string
	ExportGroup     string
	QuizGroup       string
	TranslateGroup  string
	IllustrateGroup string
	ImportWords     string
	ListModels      bool
	ArchiveExports  bool

	// Dictionary flags
	DictEndpoint string
	DictLanguage string

	// Translation flags
	Translator     string
	TargetLanguage string
	OpenAIModel    string
	GeminiModel    string

	// OpenAI Image flags
	OpenAIImageModel   string
	OpenAIImageSize    string
	OpenAIImageQuality string
	OpenAIImageStyle   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		DictLanguage:       "en",
		Translator:         "openai",
		TargetLanguage:     "Bulgarian",
		OpenAIModel:        "gpt-4o-mini",
		GeminiModel:        "gemini-2.0-flash",
		OpenAIImageModel:   "dall-e-2",
		OpenAIImageSize:    "512x512",
		OpenAIImageQuality: "standard",
		OpenAIImageStyle:   "natural",
	}
}
