package eol

// SoftwareLifecycle represents one release line of a software product.
type SoftwareLifecycle struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Cycle             string `json:"cycle"`
	ReleaseLabel      string `json:"releaseLabel"`
	ReleaseDate       string `json:"releaseDate"`
	EOL               string `json:"eol"`
	Latest            string `json:"latest"`
	LatestReleaseDate string `json:"latestReleaseDate"`
	LTS               string `json:"lts"`
	Support           string `json:"support"`
	ExtendedSupport   string `json:"extendedSupport"`
	Link              string `json:"link"`
}

// Validate returns an error if the record is not complete.
func (s *SoftwareLifecycle) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "software name required")
	}
	if s.EOL == "" {
		return Errorf(EINVALID, "software %q: eol required", s.Name)
	}
	return nil
}

func (s *SoftwareLifecycle) String() string {
	return s.Name + ", " + s.Cycle + ": " + s.EOL
}
