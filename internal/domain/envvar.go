package domain

// EnvVar is a key/value pair edited on the deploy configuration form.
// ID is assigned when the row is created and never reused.
type EnvVar struct {
	ID    string
	Key   string
	Value string
}
