package regexcore

// defaultSurface backs the package-level convenience functions below, so
// callers who don't need a custom Config can skip constructing a Surface
// themselves.
var defaultSurface = NewSurface(DefaultConfig())

// Compile parses pattern using the default configuration.
func Compile(pattern string) (*CompiledPattern, error) {
	return defaultSurface.Compile(pattern)
}

// MustCompile is like Compile but panics if pattern is invalid. Intended
// for patterns known to be valid at init time.
func MustCompile(pattern string) *CompiledPattern {
	cp, err := Compile(pattern)
	if err != nil {
		panic("regexcore: Compile(`" + pattern + "`): " + err.Error())
	}
	return cp
}

// MatchFull runs the default Surface's MatchFull.
func MatchFull(pattern, input string, engine Engine) (Result, error) {
	return defaultSurface.MatchFull(pattern, input, engine)
}

// Find runs the default Surface's Find.
func Find(pattern, input string, engine Engine) (Result, error) {
	return defaultSurface.Find(pattern, input, engine)
}

// FindAll runs the default Surface's FindAll.
func FindAll(pattern, input string, engine Engine) (Result, error) {
	return defaultSurface.FindAll(pattern, input, engine)
}

// Replace runs the default Surface's Replace.
func Replace(pattern, input, replacement string, engine Engine) (ReplaceResult, error) {
	return defaultSurface.Replace(pattern, input, replacement, engine)
}

// Split runs the default Surface's Split.
func Split(pattern, input string, engine Engine) ([]string, error) {
	return defaultSurface.Split(pattern, input, engine)
}
