package compare

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"archcompare/internal/models"
)

const noDifferences = "No differences"

// ErrSchemaMismatch means a document does not follow the architecture-set layout.
const ErrSchemaMismatch = "schema_mismatch"

type architectureSet struct {
	Architectures []architectureSpec `json:"architectures"`
}

type architectureSpec struct {
	ArchitectureID string           `json:"architecture_id"`
	Components     []componentSpace `json:"components_search_space"`
}

type componentSpace struct {
	ComponentID string       `json:"component_id"`
	Service     serviceSpace `json:"service_search_space"`
}

type serviceSpace struct {
	ServiceCodename  *string            `json:"service_codename"`
	SelectAttributes any                `json:"service_select_attributes"`
	Components       []serviceComponent `json:"service_components_search_spaces"`
}

type serviceComponent struct {
	Codename          *string          `json:"service_component_codename"`
	Attributes        []attributeSpace `json:"attributes_search_space"`
	NumberOfInstances any              `json:"number_of_instances"`
	Sort              any              `json:"service_component_sort"`
}

type attributeSpace struct {
	Codename       *string `json:"attribute_codename"`
	Values         any     `json:"attribute_values"`
	ConstraintExpr any     `json:"attribute_constraint_expr"`
	Unit           any     `json:"attribute_unit"`
}

type reasoningSet struct {
	Objects []reasoningObject `json:"reasoning_objects"`
}

type reasoningObject struct {
	ServiceCodename             string `json:"service_codename"`
	ServiceUnderstanding        string `json:"service_understanding"`
	AttributeSelectionRationale string `json:"attribute_selection_rationale"`
	CriticalAttributesReasoning string `json:"critical_attributes_reasoning"`
	AlternativesConsidered      []any  `json:"alternatives_considered"`
}

// service is the normalized view of one service inside an architecture.
type service struct {
	codename         string
	selectAttributes any
	components       map[string]component
}

type component struct {
	componentID string
	codename    string
	attributes  []attributeSpace
	instances   any
	sort        any
}

type attributeConfig struct {
	values     any
	constraint any
	unit       any
}

type componentConfig struct {
	instances  any
	sort       any
	attributes map[string]attributeConfig
}

// HasArchitectureSchema reports whether a document uses the architecture-set
// layout (a top-level "architectures" list).
func HasArchitectureSchema(doc *models.Document) bool {
	if doc == nil {
		return false
	}
	root, ok := doc.Root.(map[string]any)
	if !ok {
		return false
	}
	_, ok = root["architectures"]
	return ok
}

// CompareArchitectures builds the per-architecture table: four binary "same"
// indicators (services, components, attributes, configurations), their
// difference descriptions and a reasoning summary. It returns no rows when
// neither document uses the architecture-set layout.
func CompareArchitectures(baseline, enhanced, baselineReasoning, enhancedReasoning *models.Document) ([]models.ArchitectureRow, error) {
	if baseline == nil || enhanced == nil {
		return nil, NewError(ErrInvalidInput, "architecture documents must not be nil", "", nil)
	}
	if !HasArchitectureSchema(baseline) && !HasArchitectureSchema(enhanced) {
		return nil, nil
	}

	var baseSet, enhSet architectureSet
	if err := decodeInto(baseline, &baseSet); err != nil {
		return nil, err
	}
	if err := decodeInto(enhanced, &enhSet); err != nil {
		return nil, err
	}

	var baseReasoning, enhReasoning reasoningSet
	if err := decodeInto(baselineReasoning, &baseReasoning); err != nil {
		return nil, err
	}
	if err := decodeInto(enhancedReasoning, &enhReasoning); err != nil {
		return nil, err
	}

	c := architectureComparator{
		baselineReasoning: reasoningLookup(baseReasoning),
		enhancedReasoning: reasoningLookup(enhReasoning),
	}

	baseArchs := archLookup(baseSet)
	enhArchs := archLookup(enhSet)
	ids := sortedUnion(keysOf(baseArchs), keysOf(enhArchs))

	rows := make([]models.ArchitectureRow, 0, len(ids))
	for _, id := range ids {
		b, inBase := baseArchs[id]
		e, inEnh := enhArchs[id]
		switch {
		case !inBase:
			rows = append(rows, onlyInRow(id, "enhanced"))
		case !inEnh:
			rows = append(rows, onlyInRow(id, "baseline"))
		default:
			rows = append(rows, c.compareArchitecture(id, b, e))
		}
	}
	return rows, nil
}

type architectureComparator struct {
	baselineReasoning map[string]reasoningObject
	enhancedReasoning map[string]reasoningObject
}

func (c architectureComparator) compareArchitecture(id string, baseline, enhanced architectureSpec) models.ArchitectureRow {
	baseServices := extractServices(baseline)
	enhServices := extractServices(enhanced)

	servicesSame, servicesDiff := compareServices(baseServices, enhServices)
	componentsSame, componentsDiff := compareComponents(baseServices, enhServices)
	attributesSame, attributesDiff := compareAttributes(baseServices, enhServices)
	configurationsSame, configurationsDiff := compareConfigurations(baseServices, enhServices)

	return models.ArchitectureRow{
		ArchitectureID:            id,
		ServicesSame:              boolToFlag(servicesSame),
		ComponentsSame:            boolToFlag(componentsSame),
		AttributesSame:            boolToFlag(attributesSame),
		ConfigurationsSame:        boolToFlag(configurationsSame),
		ServicesDifferences:       servicesDiff,
		ComponentsDifferences:     componentsDiff,
		AttributesDifferences:     attributesDiff,
		ConfigurationsDifferences: configurationsDiff,
		ReasoningDescription:      c.reasoningDescription(baseServices, enhServices),
	}
}

func onlyInRow(id, side string) models.ArchitectureRow {
	diff := "Architecture only in " + side
	return models.ArchitectureRow{
		ArchitectureID:            id,
		ServicesDifferences:       diff,
		ComponentsDifferences:     diff,
		AttributesDifferences:     diff,
		ConfigurationsDifferences: diff,
		ReasoningDescription:      fmt.Sprintf("Architecture exists only in %s dataset", side),
	}
}

// extractServices groups an architecture's components by service codename.
// Component keys are "<component_id>_<service_component_codename>".
func extractServices(arch architectureSpec) map[string]*service {
	services := make(map[string]*service)
	for _, cs := range arch.Components {
		name := stringOr(cs.Service.ServiceCodename, "Unknown")
		svc, ok := services[name]
		if !ok {
			svc = &service{
				codename:         name,
				selectAttributes: cs.Service.SelectAttributes,
				components:       make(map[string]component),
			}
			services[name] = svc
		}

		for _, sc := range cs.Service.Components {
			codename := stringOr(sc.Codename, "Unknown")
			instances := sc.NumberOfInstances
			if instances == nil {
				instances = json.Number("1")
			}
			sortCfg := sc.Sort
			if sortCfg == nil {
				sortCfg = []any{}
			}
			svc.components[cs.ComponentID+"_"+codename] = component{
				componentID: cs.ComponentID,
				codename:    codename,
				attributes:  sc.Attributes,
				instances:   instances,
				sort:        sortCfg,
			}
		}
	}
	return services
}

func compareServices(baseline, enhanced map[string]*service) (bool, string) {
	return compareKeySets(keysOf(baseline), keysOf(enhanced))
}

func compareComponents(baseline, enhanced map[string]*service) (bool, string) {
	return compareKeySets(componentKeys(baseline), componentKeys(enhanced))
}

func compareKeySets(baseline, enhanced []string) (bool, string) {
	baseOnly := difference(baseline, enhanced)
	enhOnly := difference(enhanced, baseline)
	if len(baseOnly) == 0 && len(enhOnly) == 0 {
		return true, noDifferences
	}

	var diffs []string
	if len(baseOnly) > 0 {
		diffs = append(diffs, "Baseline only: "+strings.Join(baseOnly, ", "))
	}
	if len(enhOnly) > 0 {
		diffs = append(diffs, "Enhanced only: "+strings.Join(enhOnly, ", "))
	}
	return false, strings.Join(diffs, "; ")
}

func compareAttributes(baseline, enhanced map[string]*service) (bool, string) {
	baseAttrs := attributeNames(baseline)
	enhAttrs := attributeNames(enhanced)
	if reflect.DeepEqual(baseAttrs, enhAttrs) {
		return true, noDifferences
	}

	var diffs []string
	for _, compKey := range sortedUnion(keysOf(baseAttrs), keysOf(enhAttrs)) {
		baseNames := keysOf(baseAttrs[compKey])
		enhNames := keysOf(enhAttrs[compKey])
		baseOnly := difference(baseNames, enhNames)
		enhOnly := difference(enhNames, baseNames)
		if len(baseOnly) == 0 && len(enhOnly) == 0 {
			continue
		}

		var compDiffs []string
		if len(baseOnly) > 0 {
			compDiffs = append(compDiffs, "baseline only: "+strings.Join(baseOnly, ", "))
		}
		if len(enhOnly) > 0 {
			compDiffs = append(compDiffs, "enhanced only: "+strings.Join(enhOnly, ", "))
		}
		diffs = append(diffs, fmt.Sprintf("%s (%s)", compKey, strings.Join(compDiffs, "; ")))
	}
	return false, joinOrNone(diffs)
}

func compareConfigurations(baseline, enhanced map[string]*service) (bool, string) {
	baseConfigs := configurations(baseline)
	enhConfigs := configurations(enhanced)
	if reflect.DeepEqual(baseConfigs, enhConfigs) {
		return true, noDifferences
	}

	var diffs []string
	for _, compKey := range sortedUnion(keysOf(baseConfigs), keysOf(enhConfigs)) {
		b := baseConfigs[compKey]
		e := enhConfigs[compKey]
		if reflect.DeepEqual(b, e) {
			continue
		}

		var compDiffs []string
		if !reflect.DeepEqual(b.instances, e.instances) {
			compDiffs = append(compDiffs, fmt.Sprintf("instances: %s vs %s", formatValue(b.instances), formatValue(e.instances)))
		}
		if !reflect.DeepEqual(b.sort, e.sort) {
			compDiffs = append(compDiffs, "sort configuration differs")
		}
		for _, attrName := range sortedUnion(keysOf(b.attributes), keysOf(e.attributes)) {
			ba := b.attributes[attrName]
			ea := e.attributes[attrName]
			var attrDiffs []string
			if !reflect.DeepEqual(ba.values, ea.values) {
				attrDiffs = append(attrDiffs, "values")
			}
			if !reflect.DeepEqual(ba.constraint, ea.constraint) {
				attrDiffs = append(attrDiffs, "constraint")
			}
			if !reflect.DeepEqual(ba.unit, ea.unit) {
				attrDiffs = append(attrDiffs, "unit")
			}
			if len(attrDiffs) > 0 {
				compDiffs = append(compDiffs, fmt.Sprintf("%s: %s", attrName, strings.Join(attrDiffs, ", ")))
			}
		}
		if len(compDiffs) > 0 {
			diffs = append(diffs, fmt.Sprintf("%s (%s)", compKey, strings.Join(compDiffs, "; ")))
		}
	}
	return false, joinOrNone(diffs)
}

// componentKeys returns "<service>::<component>" keys across all services.
func componentKeys(services map[string]*service) []string {
	var keys []string
	for name, svc := range services {
		for compName := range svc.components {
			keys = append(keys, name+"::"+compName)
		}
	}
	sort.Strings(keys)
	return keys
}

func attributeNames(services map[string]*service) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})
	for name, svc := range services {
		for compName, comp := range svc.components {
			names := make(map[string]struct{})
			for _, attr := range comp.attributes {
				names[stringOr(attr.Codename, "unknown")] = struct{}{}
			}
			out[name+"::"+compName] = names
		}
	}
	return out
}

func configurations(services map[string]*service) map[string]componentConfig {
	out := make(map[string]componentConfig)
	for name, svc := range services {
		for compName, comp := range svc.components {
			cfg := componentConfig{
				instances:  comp.instances,
				sort:       comp.sort,
				attributes: make(map[string]attributeConfig),
			}
			for _, attr := range comp.attributes {
				cfg.attributes[stringOr(attr.Codename, "unknown")] = attributeConfig{
					values:     attr.Values,
					constraint: attr.ConstraintExpr,
					unit:       attr.Unit,
				}
			}
			out[name+"::"+compName] = cfg
		}
	}
	return out
}

// decodeInto re-decodes a generic document tree into a typed layout. A nil
// document leaves target untouched.
func decodeInto(doc *models.Document, target any) error {
	if doc == nil || doc.Root == nil {
		return nil
	}
	data, err := json.Marshal(doc.Root)
	if err != nil {
		return NewError(ErrSchemaMismatch, "document cannot be re-encoded", doc.Path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return NewError(ErrSchemaMismatch, "document does not match the architecture layout", doc.Path, err)
	}
	return nil
}

func archLookup(set architectureSet) map[string]architectureSpec {
	out := make(map[string]architectureSpec, len(set.Architectures))
	for _, arch := range set.Architectures {
		out[arch.ArchitectureID] = arch
	}
	return out
}

func reasoningLookup(set reasoningSet) map[string]reasoningObject {
	out := make(map[string]reasoningObject, len(set.Objects))
	for _, obj := range set.Objects {
		if obj.ServiceCodename != "" {
			out[obj.ServiceCodename] = obj
		}
	}
	return out
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedUnion(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, k := range a {
		set[k] = struct{}{}
	}
	for _, k := range b {
		set[k] = struct{}{}
	}
	return keysOf(set)
}

// difference returns the sorted elements of a that are not in b.
func difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, k := range b {
		inB[k] = struct{}{}
	}
	var out []string
	for _, k := range a {
		if _, ok := inB[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func joinOrNone(diffs []string) string {
	if len(diffs) == 0 {
		return noDifferences
	}
	return strings.Join(diffs, "; ")
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func boolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
