package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/rayt-go/rayt/pkg/core"
)

// PBRTStatement represents a parsed PBRT statement
type PBRTStatement struct {
	Type       string               // Statement type (Camera, Material, Shape, etc.)
	Subtype    string               // Subtype (perspective, diffuse, sphere, etc.)
	Parameters map[string]PBRTParam // Named parameters
	Line       int                  // Line the statement started on
}

// PBRTParam represents a parameter with type and value(s)
type PBRTParam struct {
	Type   string   // Parameter type (float, integer, rgb, string, etc.)
	Values []string // Parameter values as strings
}

// PBRTLookAt holds the three vectors of a LookAt directive
type PBRTLookAt struct {
	Eye    core.Vec3
	Target core.Vec3
	Up     core.Vec3
}

// PBRTShape is a shape statement resolved against the graphics state that was
// active when it appeared
type PBRTShape struct {
	Statement   PBRTStatement
	Material    *PBRTStatement // nil if no material was bound
	Translation core.Vec3      // Accumulated Translate offset
}

// PBRTScene contains all parsed PBRT scene data
type PBRTScene struct {
	// Pre-WorldBegin statements
	LookAt     *PBRTLookAt
	Camera     *PBRTStatement
	Film       *PBRTStatement
	Sampler    *PBRTStatement
	Integrator *PBRTStatement

	// World content
	Shapes []PBRTShape
}

// graphicsState is the part of the PBRT graphics state saved by AttributeBegin
type graphicsState struct {
	material    *PBRTStatement
	translation core.Vec3
}

// PBRTParser encapsulates the state and logic for parsing PBRT files
type PBRTParser struct {
	scene          *PBRTScene
	state          graphicsState
	stateStack     []graphicsState
	namedMaterials map[string]*PBRTStatement
	inWorld        bool
	statementLines []string
	statementStart int
	lineNumber     int
}

// ParsePBRT parses PBRT content from an io.Reader
func ParsePBRT(reader io.Reader) (*PBRTScene, error) {
	parser := NewPBRTParser()

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	if err := parser.finalize(); err != nil {
		return nil, err
	}
	return parser.scene, nil
}

// LoadPBRT loads and parses a PBRT scene file
func LoadPBRT(filename string) (*PBRTScene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PBRT file: %w", err)
	}
	defer file.Close()

	scene, err := ParsePBRT(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene, nil
}

// NewPBRTParser creates a new PBRT parser instance
func NewPBRTParser() *PBRTParser {
	return &PBRTParser{
		scene:          &PBRTScene{},
		namedMaterials: make(map[string]*PBRTStatement),
	}
}

// processLine processes a single line of PBRT input
func (p *PBRTParser) processLine(line string) error {
	p.lineNumber++
	line = stripComment(strings.TrimSpace(line))
	if line == "" {
		return nil
	}

	directive, isDirective := statementDirective(line)
	if !isDirective {
		// Continuation of a multi-line statement
		if len(p.statementLines) == 0 {
			return fmt.Errorf("line %d: unexpected continuation line: %s", p.lineNumber, line)
		}
		p.statementLines = append(p.statementLines, line)
		return nil
	}

	if err := p.flushStatement(); err != nil {
		return err
	}

	switch directive {
	case "WorldBegin":
		p.inWorld = true
		return nil
	case "WorldEnd":
		p.inWorld = false
		return nil
	case "AttributeBegin":
		return p.attributeBegin()
	case "AttributeEnd":
		return p.attributeEnd()
	}

	p.statementLines = []string{line}
	p.statementStart = p.lineNumber
	return nil
}

// finalize processes the last statement and checks block balance
func (p *PBRTParser) finalize() error {
	if err := p.flushStatement(); err != nil {
		return err
	}
	if len(p.stateStack) > 0 {
		return fmt.Errorf("%d unclosed AttributeBegin block(s)", len(p.stateStack))
	}
	return nil
}

// flushStatement parses any accumulated statement lines and applies the result
func (p *PBRTParser) flushStatement() error {
	if len(p.statementLines) == 0 {
		return nil
	}
	fullStatement := strings.Join(p.statementLines, " ")
	p.statementLines = nil

	stmt, err := parseStatement(fullStatement)
	if err != nil {
		return fmt.Errorf("line %d: error parsing statement '%s': %w", p.statementStart, fullStatement, err)
	}
	stmt.Line = p.statementStart

	if err := p.applyStatement(stmt); err != nil {
		return fmt.Errorf("line %d: %w", p.statementStart, err)
	}
	return nil
}

func (p *PBRTParser) attributeBegin() error {
	if !p.inWorld {
		return fmt.Errorf("line %d: AttributeBegin outside WorldBegin", p.lineNumber)
	}
	p.stateStack = append(p.stateStack, p.state)
	return nil
}

func (p *PBRTParser) attributeEnd() error {
	if len(p.stateStack) == 0 {
		return fmt.Errorf("line %d: AttributeEnd without matching AttributeBegin", p.lineNumber)
	}
	p.state = p.stateStack[len(p.stateStack)-1]
	p.stateStack = p.stateStack[:len(p.stateStack)-1]
	return nil
}

// applyStatement updates the scene or the graphics state for one statement
func (p *PBRTParser) applyStatement(stmt *PBRTStatement) error {
	if !p.inWorld {
		switch stmt.Type {
		case "LookAt":
			lookAt, err := parseLookAt(stmt)
			if err != nil {
				return fmt.Errorf("error parsing LookAt: %w", err)
			}
			p.scene.LookAt = lookAt
		case "Camera":
			p.scene.Camera = stmt
		case "Film":
			p.scene.Film = stmt
		case "Sampler":
			p.scene.Sampler = stmt
		case "Integrator":
			p.scene.Integrator = stmt
		default:
			return fmt.Errorf("%s is not allowed before WorldBegin", stmt.Type)
		}
		return nil
	}

	switch stmt.Type {
	case "Material":
		p.state.material = stmt
	case "MakeNamedMaterial":
		if stmt.Subtype == "" {
			return fmt.Errorf("MakeNamedMaterial requires a name")
		}
		materialType, ok := stmt.GetStringParam("type")
		if !ok {
			return fmt.Errorf("named material %q has no type", stmt.Subtype)
		}
		named := *stmt
		named.Type = "Material"
		named.Subtype = materialType
		p.namedMaterials[stmt.Subtype] = &named
	case "NamedMaterial":
		named, ok := p.namedMaterials[stmt.Subtype]
		if !ok {
			return fmt.Errorf("undefined named material %q", stmt.Subtype)
		}
		p.state.material = named
	case "Translate":
		offset, err := parseVec3Values(stmt.Parameters["values"].Values)
		if err != nil {
			return fmt.Errorf("invalid Translate: %w", err)
		}
		p.state.translation = p.state.translation.Add(offset)
	case "Shape":
		p.scene.Shapes = append(p.scene.Shapes, PBRTShape{
			Statement:   *stmt,
			Material:    p.state.material,
			Translation: p.state.translation,
		})
	default:
		return fmt.Errorf("%s is not allowed inside the world block", stmt.Type)
	}
	return nil
}

// validateFilePath validates a file path for security issues
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.ToSlash(filepath.Clean(filename))

	// Only allow files in a scenes/ directory or the temp directory (for tests)
	inTemp := strings.HasPrefix(filepath.Clean(filename), filepath.Clean(os.TempDir()))
	if !inTemp && !strings.HasPrefix(cleanPath, "scenes/") && !strings.Contains(cleanPath, "/scenes/") {
		return fmt.Errorf("file path must be in scenes/ directory")
	}

	if strings.Contains(cleanPath, "..") && !strings.Contains(cleanPath, "scenes/") {
		return fmt.Errorf("invalid file path: directory traversal not allowed")
	}

	if !strings.HasSuffix(strings.ToLower(cleanPath), ".pbrt") {
		return fmt.Errorf("invalid file type: only .pbrt files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}

// parseLookAt parses the nine values of a LookAt statement
func parseLookAt(stmt *PBRTStatement) (*PBRTLookAt, error) {
	values := stmt.Parameters["values"].Values
	if len(values) != 9 {
		return nil, fmt.Errorf("LookAt requires 9 values, got %d", len(values))
	}

	eye, err := parseVec3Values(values[0:3])
	if err != nil {
		return nil, fmt.Errorf("invalid eye position: %w", err)
	}
	target, err := parseVec3Values(values[3:6])
	if err != nil {
		return nil, fmt.Errorf("invalid look-at target: %w", err)
	}
	up, err := parseVec3Values(values[6:9])
	if err != nil {
		return nil, fmt.Errorf("invalid up vector: %w", err)
	}

	return &PBRTLookAt{Eye: eye, Target: target, Up: up}, nil
}

// parseVec3Values parses exactly three float strings
func parseVec3Values(values []string) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 values, got %d", len(values))
	}
	var components [3]float64
	for i, value := range values {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid number '%s': %w", value, err)
		}
		components[i] = f
	}
	return core.NewVec3(components[0], components[1], components[2]), nil
}

// stripComment removes a trailing # comment that is not inside a quoted string
func stripComment(line string) string {
	inQuotes := false
	for i, char := range line {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return strings.TrimSpace(line[:i])
			}
		}
	}
	return line
}

// statementDirective reports whether a line starts a new statement and returns
// its directive. Directives are bare identifiers starting with an upper-case
// letter; continuation lines start with a quote, a bracket or a number.
func statementDirective(line string) (string, bool) {
	if line[0] < 'A' || line[0] > 'Z' {
		return "", false
	}
	end := strings.IndexAny(line, " \t\"[")
	if end < 0 {
		return line, true
	}
	return line[:end], true
}

// tokenizePBRT tokenizes a PBRT line respecting quoted strings and brackets
func tokenizePBRT(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	inBrackets := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, char := range line {
		switch {
		case char == '"' && !inBrackets:
			current.WriteRune(char)
			if inQuotes {
				flush()
			}
			inQuotes = !inQuotes
		case char == '[' && !inQuotes:
			flush()
			current.WriteRune(char)
			inBrackets = true
		case char == ']' && !inQuotes && inBrackets:
			current.WriteRune(char)
			flush()
			inBrackets = false
		case (char == ' ' || char == '\t') && !inQuotes && !inBrackets:
			flush()
		default:
			current.WriteRune(char)
		}
	}
	flush()

	return tokens
}

// parseStatement parses a single PBRT statement line
func parseStatement(line string) (*PBRTStatement, error) {
	// LookAt and Translate take bare numbers
	for _, directive := range []string{"LookAt", "Translate"} {
		if line == directive || strings.HasPrefix(line, directive+" ") {
			return &PBRTStatement{
				Type: directive,
				Parameters: map[string]PBRTParam{
					"values": {Type: "float", Values: strings.Fields(line[len(directive):])},
				},
			}, nil
		}
	}

	// Regular statements: Type "subtype" "paramtype name" value ...
	parts := tokenizePBRT(line)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid statement format")
	}

	stmt := &PBRTStatement{
		Type:       parts[0],
		Parameters: make(map[string]PBRTParam),
	}

	if isQuoted(parts[1]) {
		stmt.Subtype = strings.Trim(parts[1], "\"")
		parts = parts[2:]
	} else {
		parts = parts[1:]
	}

	for i := 0; i < len(parts); i++ {
		if !isQuoted(parts[i]) {
			return nil, fmt.Errorf("expected parameter declaration, got %s", parts[i])
		}

		paramDef := strings.Fields(strings.Trim(parts[i], "\""))
		if len(paramDef) != 2 {
			return nil, fmt.Errorf("invalid parameter declaration %s", parts[i])
		}
		if i+1 >= len(parts) {
			return nil, fmt.Errorf("parameter %s has no value", paramDef[1])
		}
		i++

		var values []string
		if strings.HasPrefix(parts[i], "[") {
			values = strings.Fields(strings.Trim(parts[i], "[]"))
		} else {
			values = []string{parts[i]}
		}
		for j, value := range values {
			values[j] = strings.Trim(value, "\"")
		}

		stmt.Parameters[paramDef[1]] = PBRTParam{
			Type:   paramDef[0],
			Values: values,
		}
	}

	return stmt, nil
}

func isQuoted(token string) bool {
	return len(token) >= 2 && strings.HasPrefix(token, "\"") && strings.HasSuffix(token, "\"")
}

// GetFloatParam extracts a float parameter from a PBRT statement. ok reports
// whether the parameter is present; a present value that does not parse is an error.
func (stmt *PBRTStatement) GetFloatParam(name string) (float64, bool, error) {
	param, exists := stmt.Parameters[name]
	if !exists {
		return 0, false, nil
	}
	if len(param.Values) != 1 {
		return 0, true, fmt.Errorf("parameter %s: expected 1 value, got %d", name, len(param.Values))
	}
	val, err := strconv.ParseFloat(param.Values[0], 64)
	if err != nil {
		return 0, true, fmt.Errorf("parameter %s: invalid float %q", name, param.Values[0])
	}
	return val, true, nil
}

// GetIntParam extracts an integer parameter from a PBRT statement
func (stmt *PBRTStatement) GetIntParam(name string) (int, bool, error) {
	param, exists := stmt.Parameters[name]
	if !exists {
		return 0, false, nil
	}
	if len(param.Values) != 1 {
		return 0, true, fmt.Errorf("parameter %s: expected 1 value, got %d", name, len(param.Values))
	}
	val, err := strconv.Atoi(param.Values[0])
	if err != nil {
		return 0, true, fmt.Errorf("parameter %s: invalid integer %q", name, param.Values[0])
	}
	return val, true, nil
}

// GetRGBParam extracts an RGB color parameter from a PBRT statement
func (stmt *PBRTStatement) GetRGBParam(name string) (core.Color, bool, error) {
	param, exists := stmt.Parameters[name]
	if !exists {
		return core.Color{}, false, nil
	}
	if len(param.Values) != 3 {
		return core.Color{}, true, fmt.Errorf("parameter %s: expected 3 values, got %d", name, len(param.Values))
	}
	rgb, err := parseVec3Values(param.Values)
	if err != nil {
		return core.Color{}, true, fmt.Errorf("parameter %s: %w", name, err)
	}
	return rgb, true, nil
}

// GetStringParam extracts a string parameter from a PBRT statement
func (stmt *PBRTStatement) GetStringParam(name string) (string, bool) {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) == 0 {
		return "", false
	}
	return param.Values[0], true
}

// GetColorParam reads an "rgb <name>" parameter, falling back to a
// "string color" SVG color name such as "skyblue"
func (stmt *PBRTStatement) GetColorParam(name string) (core.Color, bool, error) {
	if rgb, ok, err := stmt.GetRGBParam(name); ok || err != nil {
		return rgb, ok, err
	}
	colorName, ok := stmt.GetStringParam("color")
	if !ok {
		return core.Color{}, false, nil
	}
	named, ok := colornames.Map[strings.ToLower(colorName)]
	if !ok {
		return core.Color{}, false, fmt.Errorf("unknown color name %q", colorName)
	}
	return core.ColorFromStd(named), true, nil
}
