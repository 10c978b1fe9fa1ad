package main

import (
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	flags, args, err := parseFlags([]string{
		"--preset", "og-card",
		"-o", "card.png",
		"--scale", "3",
		"--crop", "tight",
		"--padding-mode", "comfortable",
		"--scheme", "paper",
		"--omit-background",
		"-w", "4",
		"--timeout", "45s",
		"-v",
		"pitch.yaml",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	if flags.preset != "og-card" {
		t.Errorf("preset = %q", flags.preset)
	}
	if flags.out != "card.png" {
		t.Errorf("out = %q", flags.out)
	}
	if flags.scale != 3 {
		t.Errorf("scale = %d", flags.scale)
	}
	if flags.cropMode != "tight" {
		t.Errorf("cropMode = %q", flags.cropMode)
	}
	if flags.paddingMode != "comfortable" {
		t.Errorf("paddingMode = %q", flags.paddingMode)
	}
	if flags.scheme != "paper" {
		t.Errorf("scheme = %q", flags.scheme)
	}
	if !flags.omitBackground {
		t.Error("omitBackground = false")
	}
	if flags.workers != 4 {
		t.Errorf("workers = %d", flags.workers)
	}
	if flags.timeout != 45*time.Second {
		t.Errorf("timeout = %v", flags.timeout)
	}
	if !flags.verbose {
		t.Error("verbose = false")
	}
	if len(args) != 1 || args[0] != "pitch.yaml" {
		t.Errorf("args = %v, want [pitch.yaml]", args)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	flags, args, err := parseFlags([]string{"pitch.yaml"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if flags.width != 0 || flags.height != 0 || flags.scale != 0 {
		t.Errorf("viewport flags not zero: %d %d %d", flags.width, flags.height, flags.scale)
	}
	if flags.cropMode != "" || flags.paddingMode != "" || flags.padding != 0 {
		t.Error("crop flags not zero")
	}
	if len(args) != 1 {
		t.Errorf("args = %v", args)
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	t.Parallel()

	if _, _, err := parseFlags([]string{"--bogus"}); err == nil {
		t.Error("parseFlags() accepted unknown flag")
	}
}
