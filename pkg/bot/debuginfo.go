package bot

import "fmt"

// ModuleInfo is a value summary of a module for error payloads and logs.
type ModuleInfo struct {
	Name string `json:"name"`
}

func (i ModuleInfo) String() string {
	return fmt.Sprintf("module %q", i.Name)
}

// FeatureInfo is a value summary of a feature, a loaded command or a loaded
// trigger.
type FeatureInfo struct {
	Name string      `json:"name"`
	Kind FeatureKind `json:"kind"`
}

func (i FeatureInfo) String() string {
	return fmt.Sprintf("%s %q", i.Kind, i.Name)
}

func featureInfos(features []Feature) []FeatureInfo {
	infos := make([]FeatureInfo, len(features))
	for i, f := range features {
		infos[i] = f.Info()
	}
	return infos
}
