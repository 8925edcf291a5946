package eol

// HardwareLifecycle represents the end-of-life entry of a hardware model.
type HardwareLifecycle struct {
	ID           string `json:"id"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	EOL          string `json:"eol"`
}

// Validate returns an error if the record is not complete.
func (h *HardwareLifecycle) Validate() error {
	if h.EOL == "" {
		return Errorf(EINVALID, "hardware %q: eol required", h.Model)
	}
	return nil
}

func (h *HardwareLifecycle) String() string {
	return h.Manufacturer + ", " + h.Model + ": " + h.EOL
}

// Vendor is a hardware manufacturer page discovered from a navigation menu.
type Vendor struct {
	Slug string
	URL  string
}
