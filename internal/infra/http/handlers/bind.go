package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// bindFields lê o corpo como JSON ou form-urlencoded. Corpo inválido resulta
// em campos vazios: estas rotas não validam entrada.
func bindFields(r *http.Request) map[string]string {
	fields := map[string]string{}

	if strings.Contains(r.Header.Get("Content-Type"), "json") {
		var raw map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return fields
		}
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				fields[k] = val
			case json.Number, bool:
				fields[k] = fmt.Sprint(val)
			}
		}
		return fields
	}

	if err := r.ParseForm(); err != nil {
		return fields
	}
	for k := range r.PostForm {
		fields[k] = r.PostForm.Get(k)
	}
	return fields
}

func writeStatus(w http.ResponseWriter, status string) {
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
