package adminserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/soltiHQ/gridstore/engine"
	"github.com/soltiHQ/gridstore/internal/credentials"
)

type loginRequest struct {
	Password string `json:"password"`
}

// handleLogin exchanges the admin password for a bearer token, checked
// against the bcrypt hash configured at boot (credentials.Verify).
func (s *AdminServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.issuer == nil {
		writeJSONError(r, w, http.StatusForbidden, "login not configured")
		return
	}

	var req loginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(r, w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := credentials.Verify(s.cfg.adminPasswordHash, req.Password); err != nil {
		writeJSONError(r, w, http.StatusUnauthorized, "invalid password")
		return
	}

	token, err := s.cfg.issuer.Issue("admin")
	if err != nil {
		writeJSONError(r, w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (s *AdminServer) entityConfig(entity string) (engine.EntityConfig, bool) {
	cfg, ok := s.schemas[entity]
	return cfg, ok
}

// prefilterFromQuery parses "view", or "prefilter_field"+"prefilter_value",
// into an engine.Prefilter, defaulting to NullPrefilter.
func (s *AdminServer) prefilterFromQuery(q map[string][]string, cfg engine.EntityConfig) engine.Prefilter {
	if fp := first(q, "view"); fp != "" {
		return engine.ViewPrefilter(fp)
	}
	field := first(q, "prefilter_field")
	if field == "" {
		return engine.NullPrefilter()
	}
	fc, configured := cfg.FieldConfig(field)
	return engine.FieldPrefilter(field, decodeQueryValue(first(q, "prefilter_value"), fc, configured))
}

func first(q map[string][]string, key string) string {
	vs := q[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func orderHintFromQuery(q map[string][]string) engine.OrderHint {
	field := first(q, "order_field")
	if field == "" {
		return engine.OrderHint{}
	}
	dir := engine.Asc
	if first(q, "order_dir") == "desc" {
		dir = engine.Desc
	}
	return engine.OrderHint{Field: field, Dir: dir}
}

func (s *AdminServer) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	entity, id := r.PathValue("entity"), r.PathValue("id")
	rec, ok, err := s.engine.Get(entity, id)
	if fromEngineError(r, w, err) {
		return
	}
	if !ok {
		writeJSONError(r, w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, encodeRecord(rec))
}

func (s *AdminServer) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	cfg, ok := s.entityConfig(entity)
	if !ok {
		writeJSONError(r, w, http.StatusNotFound, "unknown entity")
		return
	}
	q := r.URL.Query()
	recs, err := s.engine.GetRecords(entity, s.prefilterFromQuery(q, cfg), orderHintFromQuery(q))
	if fromEngineError(r, w, err) {
		return
	}
	writeJSON(w, http.StatusOK, encodeRecordList(recs))
}

func (s *AdminServer) handleGetBy(w http.ResponseWriter, r *http.Request) {
	entity, field, value := r.PathValue("entity"), r.PathValue("field"), r.PathValue("value")
	cfg, ok := s.entityConfig(entity)
	if !ok {
		writeJSONError(r, w, http.StatusNotFound, "unknown entity")
		return
	}
	fc, configured := cfg.FieldConfig(field)
	recs, err := s.engine.GetBy(entity, field, decodeQueryValue(value, fc, configured))
	if fromEngineError(r, w, err) {
		return
	}
	writeJSON(w, http.StatusOK, encodeRecordList(recs))
}

func (s *AdminServer) handlePage(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	cfg, ok := s.entityConfig(entity)
	if !ok {
		writeJSONError(r, w, http.StatusNotFound, "unknown entity")
		return
	}
	q := r.URL.Query()
	field := first(q, "field")
	if field == "" {
		field = cfg.Fields[0].Name
	}
	dir := engine.Asc
	if first(q, "dir") == "desc" {
		dir = engine.Desc
	}
	limit, _ := strconv.Atoi(first(q, "limit"))

	page, err := s.engine.Paginate(entity, s.prefilterFromQuery(q, cfg), field, dir, engine.PaginateOptions{
		Limit:  limit,
		After:  first(q, "after"),
		Before: first(q, "before"),
	})
	if fromEngineError(r, w, err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records":     encodeRecordList(page.Records),
		"has_next":    page.HasNext,
		"has_prev":    page.HasPrev,
		"next_cursor": page.NextCursor,
		"prev_cursor": page.PrevCursor,
	})
}

func (s *AdminServer) handleUniques(w http.ResponseWriter, r *http.Request) {
	entity, field := r.PathValue("entity"), r.PathValue("field")
	cfg, ok := s.entityConfig(entity)
	if !ok {
		writeJSONError(r, w, http.StatusNotFound, "unknown entity")
		return
	}
	q := r.URL.Query()
	prefilter := s.prefilterFromQuery(q, cfg)

	if first(q, "as") == "map" {
		m, err := s.engine.GetUniquesMap(entity, prefilter, field)
		if fromEngineError(r, w, err) {
			return
		}
		out := make([]map[string]any, 0, len(m))
		for v, count := range m {
			out = append(out, map[string]any{"value": encodeValue(v), "count": count})
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	list, err := s.engine.GetUniquesList(entity, prefilter, field)
	if fromEngineError(r, w, err) {
		return
	}
	out := make([]any, 0, len(list))
	for _, v := range list {
		out = append(out, encodeValue(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *AdminServer) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	cfg, ok := s.entityConfig(entity)
	if !ok {
		writeJSONError(r, w, http.StatusNotFound, "unknown entity")
		return
	}

	var raw map[string]any
	if err := decodeJSONBody(r, &raw); err != nil {
		writeJSONError(r, w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rec, err := decodeRecord(raw, cfg)
	if err != nil {
		writeJSONError(r, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.Put(entity, rec); fromEngineError(r, w, err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *AdminServer) handleDropRecord(w http.ResponseWriter, r *http.Request) {
	entity, id := r.PathValue("entity"), r.PathValue("id")
	if err := s.engine.Drop(entity, id); fromEngineError(r, w, err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// createViewRequest is the JSON body for POST /v1/{entity}/views. The admin
// surface only exposes (field, value)-equality or null-scoped views — an
// arbitrary predicate closure cannot be expressed safely over HTTP, so
// anything richer than field/value requires a library caller of engine.CreateView.
type createViewRequest struct {
	Field          string         `json:"field"`
	Value          any            `json:"value"`
	MaintainUnique []string       `json:"maintain_unique"`
	Params         map[string]any `json:"params"`
}

func (s *AdminServer) handleCreateView(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	cfg, ok := s.entityConfig(entity)
	if !ok {
		writeJSONError(r, w, http.StatusNotFound, "unknown entity")
		return
	}

	var req createViewRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(r, w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	prefilter := engine.NullPrefilter()
	var predicate func(engine.Record) bool
	params := make(map[string]engine.Value, len(req.Params))

	if req.Field != "" {
		fc, configured := cfg.FieldConfig(req.Field)
		val, err := decodeValue(req.Value, fc, configured)
		if err != nil {
			writeJSONError(r, w, http.StatusBadRequest, err.Error())
			return
		}
		prefilter = engine.FieldPrefilter(req.Field, val)
		params[req.Field] = val
	}
	for k, v := range req.Params {
		fc, configured := cfg.FieldConfig(k)
		val, err := decodeValue(v, fc, configured)
		if err != nil {
			writeJSONError(r, w, http.StatusBadRequest, err.Error())
			return
		}
		params[k] = val
	}

	fingerprint, err := s.engine.CreateView(entity, prefilter, predicate, req.MaintainUnique, params)
	if fromEngineError(r, w, err) {
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"fingerprint": fingerprint})
}

func (s *AdminServer) handleDestroyView(w http.ResponseWriter, r *http.Request) {
	entity, fp := r.PathValue("entity"), r.PathValue("fingerprint")
	if err := s.engine.DestroyView(entity, fp); fromEngineError(r, w, err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *AdminServer) handleGetView(w http.ResponseWriter, r *http.Request) {
	entity, fp := r.PathValue("entity"), r.PathValue("fingerprint")
	vs, err := s.engine.GetView(entity, fp)
	if fromEngineError(r, w, err) {
		return
	}
	params := make(map[string]any, len(vs.Params))
	for k, v := range vs.Params {
		params[k] = encodeValue(v)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fingerprint":     fp,
		"maintain_unique": vs.MaintainUnique,
		"params":          params,
	})
}

func (s *AdminServer) handleListViews(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	fps, err := s.engine.GetViews(entity)
	if fromEngineError(r, w, err) {
		return
	}
	writeJSON(w, http.StatusOK, fps)
}

func (s *AdminServer) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

func encodeRecordList(recs []engine.Record) []map[string]any {
	out := make([]map[string]any, 0, len(recs))
	for _, r := range recs {
		out = append(out, encodeRecord(r))
	}
	return out
}

func decodeJSONBody(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(dst)
}
