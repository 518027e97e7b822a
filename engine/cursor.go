package engine

import (
	"encoding/base64"
	"encoding/json"
)

// Cursor wire format: short keys, JSON, base64 — the same shape the rest of
// the ecosystem's cursor pagination libraries use, so that a cursor never
// leaks the field name or id in cleartext column form. A cursor carries the
// field, the direction and the id of the record it points at; Paginate
// rejects a cursor whose field or direction differs from the call's. The
// prefilter is not recorded, so it is not checked.
type cursorData struct {
	F string `json:"f"`
	D string `json:"d"`
	I string `json:"i"`
}

func encodeCursor(field string, dir Direction, id string) string {
	d := "a"
	if dir == Desc {
		d = "d"
	}
	raw, _ := json.Marshal(cursorData{F: field, D: d, I: id})
	return base64.StdEncoding.EncodeToString(raw)
}

func decodeCursor(s string) (field string, dir Direction, id string, err error) {
	raw, decErr := base64.StdEncoding.DecodeString(s)
	if decErr != nil {
		return "", Asc, "", errBadCursor("not valid base64")
	}
	var data cursorData
	if jsonErr := json.Unmarshal(raw, &data); jsonErr != nil {
		return "", Asc, "", errBadCursor("not valid json")
	}
	if data.F == "" || data.I == "" {
		return "", Asc, "", errBadCursor("missing field or id")
	}
	dir = Asc
	if data.D == "d" {
		dir = Desc
	}
	return data.F, dir, data.I, nil
}
