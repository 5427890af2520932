package layout

import (
	"encoding/json"
	"io"
	"os"
)

// WritePlanJSON writes a plan result as indented JSON, for debugging or
// feeding a renderer in another process.
func WritePlanJSON(res *PlanResult, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// EncodePlanJSON streams a plan result as indented JSON.
func EncodePlanJSON(res *PlanResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
