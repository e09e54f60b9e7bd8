// Package roots decides which content items are structural entry points.
package roots

import (
	"path"
	"strings"
)

// Reason tells which rule classified an item as a root.
type Reason string

// Root reasons.
const (
	ReasonNone        Reason = ""
	ReasonScene       Reason = "scene"
	ReasonForceLoaded Reason = "force-loaded"
	ReasonEditor      Reason = "editor"
	ReasonStreaming   Reason = "streaming"
)

// Rules lists the root rules. Every rule is an independent OR condition.
type Rules struct {
	SceneExtensions []string // matched against the lower-cased file extension
	ForceLoadedDirs []string // directory names matched anywhere in the path
	EditorDirs      []string // directory names matched anywhere in the path
	StreamingDirs   []string // project relative directories matched as a path prefix
}

// DefaultRules returns the rules of a standard project layout.
func DefaultRules() Rules {
	return Rules{
		SceneExtensions: []string{".unity"},
		ForceLoadedDirs: []string{"Resources"},
		EditorDirs:      []string{"Editor", "Editor Default Resources"},
		StreamingDirs:   []string{"Assets/StreamingAssets", "Assets/Plugins"},
	}
}

// Classifier is a pure predicate over item paths.
type Classifier struct {
	sceneExts   map[string]struct{}
	forceLoaded []string
	editor      []string
	streaming   []string
}

// New creates a classifier from the given rules.
func New(rules Rules) *Classifier {
	c := &Classifier{sceneExts: make(map[string]struct{}, len(rules.SceneExtensions))}

	for _, ext := range rules.SceneExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.sceneExts[ext] = struct{}{}
	}
	c.forceLoaded = segments(rules.ForceLoadedDirs)
	c.editor = segments(rules.EditorDirs)
	for _, dir := range rules.StreamingDirs {
		dir = strings.Trim(strings.TrimSpace(dir), "/")
		if dir != "" {
			c.streaming = append(c.streaming, dir+"/")
		}
	}

	return c
}

// IsRoot reports whether the item at p is a structural entry point.
func (c *Classifier) IsRoot(p string) bool {
	return c.Classify(p) != ReasonNone
}

// Classify returns the first matching root reason for p, or ReasonNone.
func (c *Classifier) Classify(p string) Reason {
	if _, ok := c.sceneExts[strings.ToLower(path.Ext(p))]; ok {
		return ReasonScene
	}

	wrapped := "/" + p + "/"
	if containsAny(wrapped, c.forceLoaded) {
		return ReasonForceLoaded
	}
	if containsAny(wrapped, c.editor) {
		return ReasonEditor
	}
	for _, prefix := range c.streaming {
		if strings.HasPrefix(p+"/", prefix) {
			return ReasonStreaming
		}
	}

	return ReasonNone
}

// segments turns directory names into "/name/" needles.
func segments(dirs []string) []string {
	var out []string
	for _, dir := range dirs {
		dir = strings.Trim(strings.TrimSpace(dir), "/")
		if dir != "" {
			out = append(out, "/"+dir+"/")
		}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
