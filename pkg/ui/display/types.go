// Package display holds the data the renderers know how to show.
package display

import "github.com/talss89/envtmpl/pkg/errors"

// Progress is one rendered file.
type Progress struct {
	Target string `json:"target"`
	Input  string `json:"input"`
	Output string `json:"output"`
	Bytes  int    `json:"bytes"`
	DryRun bool   `json:"dry_run"`
}

// Summary closes a render run.
type Summary struct {
	Targets int  `json:"targets"`
	Files   int  `json:"files"`
	DryRun  bool `json:"dry_run"`
}

// FuncEntry describes a template function for listings.
type FuncEntry struct {
	Name    string `json:"name"`
	Arity   string `json:"arity"`
	Summary string `json:"summary"`
}

// ErrorInfo is the flattened form of an error for display.
type ErrorInfo struct {
	Message string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorInfo extracts code and details when err carries them.
func NewErrorInfo(err error) ErrorInfo {
	info := ErrorInfo{Message: err.Error()}
	if code := errors.GetErrorCode(err); code != "" && code != errors.ErrUnknown {
		info.Code = string(code)
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		info.Details = details
	}
	return info
}
