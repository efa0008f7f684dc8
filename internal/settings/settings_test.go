package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Image != DefaultImage {
		t.Errorf("Image = %q, want %q", s.Image, DefaultImage)
	}
	if s.Docker != "" {
		t.Errorf("Docker = %q, want empty (discovery)", s.Docker)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "image: custom/toolchain:v2\ndocker: /usr/local/bin/docker\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Image != "custom/toolchain:v2" {
		t.Errorf("Image = %q, want custom/toolchain:v2", s.Image)
	}
	if s.Docker != "/usr/local/bin/docker" {
		t.Errorf("Docker = %q, want /usr/local/bin/docker", s.Docker)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("docker: /opt/docker\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Image != DefaultImage {
		t.Errorf("Image = %q, want %q", s.Image, DefaultImage)
	}
	if s.Docker != "/opt/docker" {
		t.Errorf("Docker = %q, want /opt/docker", s.Docker)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("image: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := load(path)
	if !errors.Is(err, ErrSettings) {
		t.Fatalf("error = %v, want ErrSettings", err)
	}
}
