package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultSource is the published JSON Schema for the bar configuration.
const DefaultSource = "https://raw.githubusercontent.com/barkit-dev/barkit-bar/main/schema.json"

// Fetcher downloads the bar's JSON Schema and extracts per-widget option
// schemas into a Database.
type Fetcher struct {
	client *retryablehttp.Client
	source string
}

// NewFetcher creates a fetcher for the given schema URL. An empty source
// uses DefaultSource.
func NewFetcher(source string) *Fetcher {
	if source == "" {
		source = DefaultSource
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = 60 * time.Second
	client.Logger = nil

	return &Fetcher{client: client, source: source}
}

// Fetch downloads and extracts the schema database. Each extracted widget
// schema is compiled as a sanity check before it is accepted.
func (f *Fetcher) Fetch(ctx context.Context) (*Database, error) {
	slog.Info("downloading schema", "source", f.source)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, f.source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build schema request: %w", err)
	}
	req.Header.Set("User-Agent", "barkit")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download schema: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schema download failed: HTTP %d", resp.StatusCode)
	}

	var root map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode schema JSON: %w", err)
	}

	db, err := extractDatabase(root)
	if err != nil {
		return nil, err
	}
	db.Meta = Meta{Version: 1, Source: f.source, Updated: time.Now().UTC()}

	slog.Info("schema download complete", "widgets", len(db.Widgets))
	return db, nil
}

// Update fetches the schema and writes the cache file. Returns the number of
// widget types extracted.
func (f *Fetcher) Update(ctx context.Context, dbPath string) (int, error) {
	db, err := f.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if db.Empty() {
		return 0, fmt.Errorf("schema contained no widget definitions")
	}
	if err := db.Save(dbPath); err != nil {
		return 0, err
	}
	return len(db.Widgets), nil
}

// extractDatabase walks the published schema: widget entries live at
// properties.widgets.additionalProperties.anyOf, each carrying a const type
// tag and an options object schema.
func extractDatabase(root map[string]interface{}) (*Database, error) {
	defs, _ := root["$defs"].(map[string]interface{})

	widgets := dig(root, "properties", "widgets")
	additional := dig(widgets, "additionalProperties")
	entries, _ := additional["anyOf"].([]interface{})
	if len(entries) == 0 {
		return nil, fmt.Errorf("schema has no widget entries under properties.widgets")
	}

	db := &Database{Widgets: map[string]WidgetEntry{}}
	for _, raw := range entries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		resolved := resolveNode(entry, defs, nil)
		props, _ := resolved["properties"].(map[string]interface{})

		widgetType := constString(resolveNode(asMap(props["type"]), defs, nil))
		if widgetType == "" {
			continue
		}

		optionsSchema := resolveNode(asMap(props["options"]), defs, nil)
		if len(optionsSchema) == 0 {
			continue
		}

		we, err := buildWidgetEntry(optionsSchema)
		if err != nil {
			slog.Warn("skipping widget schema", "type", widgetType, "error", err)
			continue
		}
		db.Widgets[widgetType] = we
	}

	return db, nil
}

// buildWidgetEntry converts a resolved options object schema into a widget
// entry and verifies the raw schema compiles.
func buildWidgetEntry(optionsSchema map[string]interface{}) (WidgetEntry, error) {
	raw, err := json.Marshal(optionsSchema)
	if err != nil {
		return WidgetEntry{}, fmt.Errorf("failed to serialize options schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("options.schema.json", bytes.NewReader(raw)); err != nil {
		return WidgetEntry{}, fmt.Errorf("invalid options schema: %w", err)
	}
	if _, err := compiler.Compile("options.schema.json"); err != nil {
		return WidgetEntry{}, fmt.Errorf("options schema does not compile: %w", err)
	}

	required := map[string]bool{}
	if reqList, ok := optionsSchema["required"].([]interface{}); ok {
		for _, r := range reqList {
			if name, ok := r.(string); ok {
				required[name] = true
			}
		}
	}

	entry := WidgetEntry{Options: map[string]OptionEntry{}, Raw: raw}
	props, _ := optionsSchema["properties"].(map[string]interface{})
	for name, p := range props {
		prop := asMap(p)
		entry.Options[name] = OptionEntry{
			Kind:     schemaTypeName(prop),
			Default:  prop["default"],
			Required: required[name],
		}
	}
	return entry, nil
}

// schemaTypeName picks the effective JSON type of a property schema,
// skipping "null" in type unions.
func schemaTypeName(prop map[string]interface{}) string {
	switch t := prop["type"].(type) {
	case string:
		return t
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				return s
			}
		}
	}
	if _, ok := prop["properties"]; ok {
		return "object"
	}
	if _, ok := prop["items"]; ok {
		return "array"
	}
	return "string"
}

// resolveNode resolves $ref, allOf, and anyOf/oneOf wrappers so callers see
// a plain object schema. Refs only resolve against "#/$defs/...".
func resolveNode(node map[string]interface{}, defs map[string]interface{}, seen map[string]bool) map[string]interface{} {
	if node == nil {
		return nil
	}
	if seen == nil {
		seen = map[string]bool{}
	}

	if ref, ok := node["$ref"].(string); ok {
		if seen[ref] {
			return map[string]interface{}{}
		}
		seen[ref] = true
		return resolveNode(resolveRef(ref, defs), defs, seen)
	}

	if allOf, ok := node["allOf"].([]interface{}); ok {
		merged := map[string]interface{}{}
		for _, part := range allOf {
			merged = mergeNodes(merged, resolveNode(asMap(part), defs, seen))
		}
		remainder := map[string]interface{}{}
		for k, v := range node {
			if k != "allOf" {
				remainder[k] = v
			}
		}
		return mergeNodes(merged, remainder)
	}

	variants, ok := node["anyOf"].([]interface{})
	if !ok {
		variants, ok = node["oneOf"].([]interface{})
	}
	if ok {
		best := chooseVariant(variants, defs, seen)
		remainder := map[string]interface{}{}
		for k, v := range node {
			if k != "anyOf" && k != "oneOf" {
				remainder[k] = v
			}
		}
		return mergeNodes(best, remainder)
	}

	return node
}

// chooseVariant prefers the first object-shaped variant, then anything
// non-null.
func chooseVariant(variants []interface{}, defs map[string]interface{}, seen map[string]bool) map[string]interface{} {
	for _, v := range variants {
		resolved := resolveNode(asMap(v), defs, copySeen(seen))
		if isObjectSchema(resolved) {
			return resolved
		}
	}
	for _, v := range variants {
		resolved := resolveNode(asMap(v), defs, copySeen(seen))
		if !isNullSchema(resolved) {
			return resolved
		}
	}
	if len(variants) > 0 {
		return resolveNode(asMap(variants[0]), defs, copySeen(seen))
	}
	return map[string]interface{}{}
}

func resolveRef(ref string, defs map[string]interface{}) map[string]interface{} {
	const prefix = "#/$defs/"
	if len(ref) <= len(prefix) || ref[:len(prefix)] != prefix {
		return nil
	}
	return asMap(defs[ref[len(prefix):]])
}

func mergeNodes(base, extra map[string]interface{}) map[string]interface{} {
	merged := map[string]interface{}{}
	for k, v := range base {
		merged[k] = v
	}
	props := map[string]interface{}{}
	for k, v := range asMap(base["properties"]) {
		props[k] = v
	}
	for k, v := range asMap(extra["properties"]) {
		props[k] = v
	}
	for k, v := range extra {
		if k != "properties" {
			merged[k] = v
		}
	}
	if len(props) > 0 {
		merged["properties"] = props
	}
	return merged
}

func isObjectSchema(s map[string]interface{}) bool {
	if s["type"] == "object" {
		return true
	}
	_, ok := s["properties"]
	return ok
}

func isNullSchema(s map[string]interface{}) bool {
	if s["type"] == "null" {
		return true
	}
	enum, ok := s["enum"].([]interface{})
	return ok && len(enum) == 1 && enum[0] == nil
}

func constString(s map[string]interface{}) string {
	if c, ok := s["const"].(string); ok {
		return c
	}
	if enum, ok := s["enum"].([]interface{}); ok && len(enum) == 1 {
		if c, ok := enum[0].(string); ok {
			return c
		}
	}
	return ""
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func dig(m map[string]interface{}, keys ...string) map[string]interface{} {
	cur := m
	for _, k := range keys {
		cur = asMap(cur[k])
		if cur == nil {
			return nil
		}
	}
	return cur
}

func copySeen(seen map[string]bool) map[string]bool {
	out := make(map[string]bool, len(seen))
	for k, v := range seen {
		out[k] = v
	}
	return out
}
