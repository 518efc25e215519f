package config

// ManifestFileName is the default unit manifest looked up in the working
// directory when no input files are given.
const ManifestFileName = "quill.yaml"

// NamespaceSeparator joins a qualifier and a definition name (B::limit).
const NamespaceSeparator = "::"

// DiscardName is the reserved "hole" identifier. It is always legal to
// redefine and never collected into a definition table.
const DiscardName = "_"

// DefaultCacheFileName is the resolution cache database created next to
// the manifest unless overridden with -cache.
const DefaultCacheFileName = ".quill.cache"
