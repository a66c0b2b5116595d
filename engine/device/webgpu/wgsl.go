//go:build !js

package webgpu

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

// vertexInput is one vertex attribute declared by a vertex shader.
type vertexInput struct {
	location uint32
	typeName string
}

// stageReflection is what a WGSL stage exposes to the pipeline: its entry point, the vertex
// inputs it reads (vertex stage only) and the resources it binds.
type stageReflection struct {
	entryPoint string
	inputs     map[string]vertexInput
	groups     map[int]wgpu.BindGroupLayoutDescriptor
}

// parsedField represents a single field extracted from a WGSL struct during parsing
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct represents a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}

// wgslVertexFormats maps the WGSL float types a vertex attribute may use to their component count.
var wgslVertexFormats = map[string]int{
	"f32":       1,
	"vec2f":     2,
	"vec2<f32>": 2,
	"vec3f":     3,
	"vec3<f32>": 3,
	"vec4f":     4,
	"vec4<f32>": 4,
}

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field line: optional attributes, name, colon, type.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	// locationParamRegex matches an entry point parameter such as "@location(1) uv: vec2f".
	// Return types carry no name, so they never match.
	locationParamRegex = regexp.MustCompile(`@location\((\d+)\)\s*(\w+)\s*:\s*([\w<>]+)`)

	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var ourTexture: texture_2d<f32>;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// reflectStage extracts the entry point, vertex inputs and resource bindings of one WGSL stage.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - stage: the stage the source was compiled for
//
// Returns:
//   - stageReflection: the reflected interface; entryPoint is empty if the stage has none
func reflectStage(source string, stage device.ShaderStage) stageReflection {
	cleaned := stripComments(source)
	r := stageReflection{
		entryPoint: parseEntryPoint(cleaned, stage),
		inputs:     make(map[string]vertexInput),
	}

	visibility := wgpu.ShaderStageFragment
	if stage == device.StageVertex {
		visibility = wgpu.ShaderStageVertex
		r.inputs = parseVertexInputs(cleaned)
	}
	r.groups = parseBindGroupLayouts(cleaned, visibility)
	return r
}

// parseEntryPoint returns the name of the first entry point for stage in cleaned source, or "".
func parseEntryPoint(cleaned string, stage device.ShaderStage) string {
	re := vertexEntryRegex
	if stage == device.StageFragment {
		re = fragmentEntryRegex
	}
	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// parseVertexInputs collects the @location inputs of the vertex stage, both from pure vertex
// input structs and from parameters declared directly on the entry point.
//
// Parameters:
//   - cleaned: WGSL source with comments already stripped
//
// Returns:
//   - map[string]vertexInput: inputs keyed by WGSL name
func parseVertexInputs(cleaned string) map[string]vertexInput {
	inputs := make(map[string]vertexInput)

	for _, ps := range parseStructBlocks(cleaned) {
		if !isVertexInputStruct(ps) {
			continue
		}
		for _, f := range ps.fields {
			inputs[f.name] = vertexInput{location: uint32(f.location), typeName: f.typeName}
		}
	}

	loc := vertexEntryRegex.FindStringIndex(cleaned)
	if loc == nil {
		return inputs
	}
	signature := cleaned[loc[1]:]
	if end := strings.Index(signature, "{"); end >= 0 {
		signature = signature[:end]
	}
	for _, m := range locationParamRegex.FindAllStringSubmatch(signature, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		inputs[m[2]] = vertexInput{location: uint32(n), typeName: m[3]}
	}
	return inputs
}

// parseBindGroupLayouts extracts all @group(N) @binding(M) resource declarations from cleaned WGSL
// source and returns them as wgpu.BindGroupLayoutDescriptor values grouped by group index.
// Each descriptor's entries are sorted by binding index.
//
// Parameters:
//   - cleaned: WGSL source with comments already stripped
//   - visibility: the shader stage visibility flag to set on each entry
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
func parseBindGroupLayouts(cleaned string, visibility wgpu.ShaderStage) map[int]wgpu.BindGroupLayoutDescriptor {
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	for _, match := range bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		addressSpace := strings.TrimSpace(match[3])
		typeName := strings.TrimSpace(match[5])
		groups[group] = append(groups[group], classifyResource(uint32(binding), visibility, addressSpace, typeName))
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result
}

// classifyResource creates a wgpu.BindGroupLayoutEntry from a parsed resource declaration.
// Only sampled 2D float textures, filtering samplers and uniform buffers are recognized; anything
// else yields an entry with no resource type, which pipeline creation rejects.
//
// Parameters:
//   - binding: the binding index from @binding(N)
//   - visibility: the shader stage visibility flag
//   - addressSpace: the address space qualifier, empty for handle types
//   - typeName: the WGSL type string (e.g. "texture_2d<f32>", "sampler")
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the layout entry for the resource
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case strings.ReplaceAll(typeName, " ", "") == "texture_2d<f32>":
		entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	}
	return entry
}

// mergeBindGroupLayouts combines the layouts declared by the vertex and fragment stages.
// A binding declared by both stages keeps one entry with the union of their visibilities.
func mergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)
	for _, layouts := range []map[int]wgpu.BindGroupLayoutDescriptor{vertexLayouts, fragmentLayouts} {
		for g, desc := range layouts {
			entries := merged[g].Entries
		next:
			for _, e := range desc.Entries {
				for i := range entries {
					if entries[i].Binding == e.Binding {
						entries[i].Visibility |= e.Visibility
						continue next
					}
				}
				entries = append(entries, e)
			}
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Binding < entries[j].Binding
			})
			merged[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
		}
	}
	return merged
}

// checkBindings rejects layouts the device cannot fill from its texture state. Only sampled
// textures and samplers are bound; buffer bindings and unrecognized resources fail the link.
func checkBindings(groups map[int]wgpu.BindGroupLayoutDescriptor) error {
	for g, desc := range groups {
		for _, e := range desc.Entries {
			switch {
			case e.Buffer.Type != wgpu.BufferBindingTypeUndefined:
				return fmt.Errorf("group %d binding %d: buffer bindings are not supported", g, e.Binding)
			case e.Texture.SampleType == wgpu.TextureSampleTypeUndefined && e.Sampler.Type == wgpu.SamplerBindingTypeUndefined:
				return fmt.Errorf("group %d binding %d: unsupported resource type", g, e.Binding)
			}
		}
	}
	return nil
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
// and parses their fields including @location and @builtin attributes
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}
	return structs
}

// parseStructFields parses the body of a struct block into individual fields
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field := parsedField{location: -1}
		if builtinRegex.MatchString(line) {
			field.isBuiltin = true
		}
		if locMatch := locationRegex.FindStringSubmatch(line); locMatch != nil {
			if loc, err := strconv.Atoi(locMatch[1]); err == nil {
				field.location = loc
			}
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = strings.TrimSpace(fm[2])
		fields = append(fields, field)
	}
	return fields
}

// isVertexInputStruct returns true if the struct has at least one @location field and no @builtin
// field. Vertex output structs mix @location with @builtin(position) and are excluded.
func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

// splitAtTopLevelCommas splits a string at commas that are not nested inside angle brackets,
// so array<T, N> stays one field.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// stripComments removes both single-line (//) and nested block (/* */) comments from WGSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i++
				continue
			}
			if source[i] == '*' && source[i+1] == '/' && depth > 0 {
				depth--
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
