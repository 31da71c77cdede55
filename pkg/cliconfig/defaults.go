package cliconfig

// DefaultBaseURL is the backend URL used when nothing else configures one.
const DefaultBaseURL = "http://localhost:8010"

// DefaultLogLevel is the default logging level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default logging output format.
const DefaultLogFormat = "text"

// itoa converts an int to string without importing strconv.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	// Handle negative numbers
	if i < 0 {
		return "-" + itoa(-i)
	}
	// Build digits in reverse
	digits := make([]byte, 0, 10)
	for i > 0 {
		digits = append(digits, byte('0'+i%10))
		i /= 10
	}
	// Reverse
	for left, right := 0, len(digits)-1; left < right; left, right = left+1, right-1 {
		digits[left], digits[right] = digits[right], digits[left]
	}
	return string(digits)
}

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		BaseURL:   DefaultBaseURL,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	// Mark all as default source
	cfg.Sources["baseUrl"] = SourceDefault
	cfg.Sources["logLevel"] = SourceDefault
	cfg.Sources["logFormat"] = SourceDefault

	return cfg
}
