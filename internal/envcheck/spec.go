package envcheck

import (
	"fmt"
	"strings"

	"github.com/mwiater/ragnote/internal/util"
)

// Variable names read from the environment.
const (
	VarAPIBaseURL     = "PHARIA_API_BASE_URL"
	VarAPIToken       = "PHARIA_AI_TOKEN"
	VarDataNamespace  = "PHARIA_DATA_NAMESPACE"
	VarDataCollection = "PHARIA_DATA_COLLECTION"
	VarIndex          = "INDEX"
	VarHybridIndex    = "HYBRID_INDEX"
	VarFilterIndex    = "FILTER_INDEX"
	VarEmbeddingModel = "EMBEDDING_MODEL_NAME"
)

const maskKeep = 8

// EnvSpec lists the variables a session needs. Customize names the variables
// whose sample placeholder must be replaced with a personal value.
type EnvSpec struct {
	Required  []string
	Customize []string
}

// DefaultSpec returns the variables used by the tutorial notebooks.
func DefaultSpec() EnvSpec {
	return EnvSpec{
		Required: []string{
			VarAPIBaseURL,
			VarAPIToken,
			VarDataNamespace,
			VarDataCollection,
			VarIndex,
			VarHybridIndex,
			VarFilterIndex,
			VarEmbeddingModel,
		},
		Customize: []string{
			VarDataCollection,
			VarIndex,
			VarHybridIndex,
			VarFilterIndex,
		},
	}
}

// Validate checks that every customizable name is also required.
func (s EnvSpec) Validate() error {
	required := make(map[string]struct{}, len(s.Required))
	for _, name := range s.Required {
		required[name] = struct{}{}
	}
	for _, name := range s.Customize {
		if _, ok := required[name]; !ok {
			return fmt.Errorf("customizable variable %s is not in the required set", name)
		}
	}
	return nil
}

func (s EnvSpec) needsCustomization(name string) bool {
	for _, c := range s.Customize {
		if c == name {
			return true
		}
	}
	return false
}

// MaskSensitiveValue hides the middle of token values for display. Other
// variables are returned unchanged.
func MaskSensitiveValue(name, value string) string {
	if !strings.Contains(name, "TOKEN") {
		return value
	}
	return util.MaskSecret(value, maskKeep)
}
