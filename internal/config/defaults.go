package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestsDir is the folder elm-test reads test modules from
	DefaultTestsDir = "tests"
	// DefaultElmTestCommand is the elm-test executable
	DefaultElmTestCommand = "elm-test"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "elm-stuff/elmtl"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
	// DefaultConfigFile is read from the project root when present
	DefaultConfigFile = ".elmtl.yaml"
	// DefaultEnvFile is read from the project root when present
	DefaultEnvFile = ".env"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"elm-stuff",
	"node_modules",
}
