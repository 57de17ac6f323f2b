package scene

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Identifier accepted by Load
	Name        string
	DisplayName string
	Description string
	Group       string // Grouping category
	Type        string // "builtin" or "pbrt"
	FilePath    string // Path to PBRT file (pbrt type only)
	Variant     string
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

// ScenesResponse lists every known scene by group
type ScenesResponse struct {
	Groups []SceneGroup
}

// scenesDirs are searched in order for the scenes directory, so that the CLI
// and package tests both find it
var scenesDirs = []string{"scenes", "../scenes", "../../scenes"}

// ListPBRTScenes scans the scenes directory and returns discovered PBRT scenes
func ListPBRTScenes() ([]SceneInfo, error) {
	var scenesDir string
	for _, path := range scenesDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.pbrt"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParsePBRTMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParsePBRTMetadata extracts metadata from PBRT file header comments
func ParsePBRTMetadata(filePath string) (SceneInfo, error) {
	// Extract filename without extension for fallback values
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	// Create SceneInfo with fallback values
	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("pbrt:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Description: "",
		Group:       "PBRT Scenes", // Default group
		Type:        "pbrt",
		FilePath:    filePath,
		Variant:     "",
	}

	// Open file to read header comments
	file, err := os.Open(filePath)
	if err != nil {
		// If we can't read the file, return with fallback values
		return sceneInfo, nil
	}
	defer file.Close()

	// Read header comments to extract metadata
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		// Parse metadata from comment
		if strings.HasPrefix(line, "# ") {
			content := strings.TrimPrefix(line, "# ")

			if strings.HasPrefix(content, "Scene:") {
				sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
			} else if strings.HasPrefix(content, "Variant:") {
				sceneInfo.Variant = strings.TrimSpace(strings.TrimPrefix(content, "Variant:"))
			} else if strings.HasPrefix(content, "Description:") {
				sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
			} else if strings.HasPrefix(content, "Group:") {
				sceneInfo.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
			}
		}
	}

	// Update display name based on parsed metadata
	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// builtInScenes describes the scenes constructed in code
var builtInScenes = []SceneInfo{
	{
		ID:          "random",
		Name:        "Random Spheres",
		DisplayName: "Random Spheres",
		Description: "Ground sphere, a grid of small random spheres and three large spheres",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "default",
		Name:        "Default Scene",
		DisplayName: "Default Scene",
		Description: "Diffuse, metal and glass spheres including a hollow glass shell",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "sphere-grid",
		Name:        "Sphere Grid",
		DisplayName: "Sphere Grid",
		Description: "10x10 grid of rainbow-colored metallic spheres",
		Group:       builtInGroup,
		Type:        "builtin",
	},
}

const builtInGroup = "Built-in Scenes"

// Load creates a scene by built-in ID, by "pbrt:<name>" for a file in the
// scenes directory, or by path to a .pbrt file. random drives scenes with a
// random layout.
func Load(name string, random *rand.Rand) (*Scene, error) {
	switch name {
	case "random":
		return NewRandomScene(random), nil
	case "default":
		return NewDefaultScene(), nil
	case "sphere-grid":
		return NewSphereGridScene(), nil
	}

	if strings.HasPrefix(name, "pbrt:") {
		scenes, err := ListPBRTScenes()
		if err != nil {
			return nil, err
		}
		for _, info := range scenes {
			if info.ID == name {
				return NewPBRTScene(info.FilePath)
			}
		}
		return nil, fmt.Errorf("unknown PBRT scene %q", name)
	}

	if strings.HasSuffix(strings.ToLower(name), ".pbrt") {
		return NewPBRTScene(name)
	}

	return nil, fmt.Errorf("unknown scene %q", name)
}

// ListAllScenes returns both built-in and PBRT scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	pbrtScenes, err := ListPBRTScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list PBRT scenes: %w", err)
	}

	allScenes := append(append([]SceneInfo{}, builtInScenes...), pbrtScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtInGroup,
		Scenes: groupMap[builtInGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
