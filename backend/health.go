package backend

import (
	"encoding/json"
	"net/http"

	"github.com/misteriaud/passeri/implementer"
	"github.com/misteriaud/passeri/model"
)

const healthURI = "/healthz"

// health reports the number of bridges held per kind.
func health(memory *implementer.Memory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := make(map[string]int, len(model.Kinds))
		for _, kind := range model.Kinds {
			counts[kind.String()+"s"] = memory.Len(kind)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "bridges": counts})
	}
}
