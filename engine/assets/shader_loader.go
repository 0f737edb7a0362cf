package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// LoadShader returns the source of an embedded GLSL file.
func LoadShader(name string) (string, error) {
	b, err := shaderFS.ReadFile(path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}

// QuadShaders returns the batched quad program used by renderer2d.
func QuadShaders() (vert, frag string, err error) {
	if vert, err = LoadShader("quad.vert"); err != nil {
		return "", "", err
	}
	if frag, err = LoadShader("quad.frag"); err != nil {
		return "", "", err
	}
	return vert, frag, nil
}
