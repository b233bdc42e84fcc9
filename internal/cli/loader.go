package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// Campaign is a batch of degree pairs to verify with shared settings,
// declared in CUE.
type Campaign struct {
	Name     string       `json:"name"`
	Workers  int          `json:"workers"`
	Paranoid bool         `json:"paranoid"`
	Pairs    []DegreePair `json:"pairs"`
}

// DegreePair is one instance of a campaign.
type DegreePair struct {
	DegP int `json:"deg_p"`
	DegQ int `json:"deg_q"`
}

// LoadError represents an error that occurred during campaign loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	// Campaign validation errors
	ErrCodeCampaignName  = "E101" // Missing campaign name
	ErrCodeCampaignPairs = "E102" // No degree pairs declared
	ErrCodeBadDegrees    = "E103" // Degree pair out of range
)

// LoadCampaign loads a campaign declaration from a directory of CUE
// files. All files in the directory are unified into one instance, so a
// campaign may be split across files.
func LoadCampaign(dir string) (*Campaign, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("campaign directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing campaign directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	campaignVal := value.LookupPath(cue.ParsePath("campaign"))
	if !campaignVal.Exists() {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "no campaign declared", Pos: value.Pos()}
	}

	var campaign Campaign
	if err := campaignVal.Decode(&campaign); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("decoding campaign: %v", err), Pos: campaignVal.Pos()}
	}
	if err := validateCampaign(&campaign, campaignVal.Pos()); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func validateCampaign(c *Campaign, pos token.Pos) error {
	if c.Name == "" {
		return &LoadError{Code: ErrCodeCampaignName, Message: "campaign is missing a name", Pos: pos}
	}
	if len(c.Pairs) == 0 {
		return &LoadError{Code: ErrCodeCampaignPairs, Message: fmt.Sprintf("campaign %q declares no degree pairs", c.Name), Pos: pos}
	}
	for _, pair := range c.Pairs {
		if pair.DegP < 1 || pair.DegP > 255 || pair.DegQ < 1 || pair.DegQ > 255 {
			return &LoadError{
				Code:    ErrCodeBadDegrees,
				Message: fmt.Sprintf("campaign %q: degrees must be in [1, 255], got (%d, %d)", c.Name, pair.DegP, pair.DegQ),
				Pos:     pos,
			}
		}
	}
	return nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
