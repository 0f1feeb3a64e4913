package scene

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将场景结果输出为 JSON，便于核对旋转数与点数。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
