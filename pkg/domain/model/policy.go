package model

// Policy controls what gets tagged and how tags and releases are worded.
// Fields map 1:1 to the optional TOML policy file; zero values fall back
// to DefaultPolicy values.
type Policy struct {
	// VersionFile is the repository-relative path of the toolchain pin file
	VersionFile string `toml:"version_file"`

	// Branch is the branch whose pushes trigger tagging
	Branch string `toml:"branch"`

	// Tagger is the automation identity recorded on annotated tags
	Tagger TagIdentity `toml:"tagger"`

	// TagMessage is a text/template for the tag annotation, rendered with {Version}
	TagMessage string `toml:"tag_message"`

	// ReleaseBody is a text/template for the release description, rendered with {Version}
	ReleaseBody string `toml:"release_body"`
}

// DefaultPolicy returns the built-in policy: tag releases of the Lean
// toolchain pin on pushes to main.
func DefaultPolicy() *Policy {
	return &Policy{
		VersionFile: "lean-toolchain",
		Branch:      "main",
		Tagger: TagIdentity{
			Name:  "tagkeeper[bot]",
			Email: "tagkeeper[bot]@users.noreply.github.com",
		},
		TagMessage:  "Release {{ .Version }}",
		ReleaseBody: "Automated release for toolchain version {{ .Version }}.",
	}
}

// Merge fills empty fields of p from defaults
func (p *Policy) Merge(defaults *Policy) {
	if p.VersionFile == "" {
		p.VersionFile = defaults.VersionFile
	}
	if p.Branch == "" {
		p.Branch = defaults.Branch
	}
	if p.Tagger.Name == "" {
		p.Tagger.Name = defaults.Tagger.Name
	}
	if p.Tagger.Email == "" {
		p.Tagger.Email = defaults.Tagger.Email
	}
	if p.TagMessage == "" {
		p.TagMessage = defaults.TagMessage
	}
	if p.ReleaseBody == "" {
		p.ReleaseBody = defaults.ReleaseBody
	}
}
