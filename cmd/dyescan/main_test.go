package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp(&out)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"dyescan"}, args...))

	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runApp(t, "--data-dir", dir, "run",
		"--height", "200", "--width", "200",
		"--min-radius", "80", "--max-radius", "90",
		"--seed", "3", "--images")
	require.NoError(t, err)
	require.Contains(t, out, "Has cancer (Microscope Image): true\n")
	require.Contains(t, out, "Has cancer (Dye Sensor Image): true\n")

	require.FileExists(t, filepath.Join(dir, "microscope.json"))
	require.FileExists(t, filepath.Join(dir, "dye_sensor.json"))
	require.FileExists(t, filepath.Join(dir, "images", "microscope_image.png"))
}

func TestVerboseShortFlag(t *testing.T) {
	dir := t.TempDir()

	out, err := runApp(t, "-v", "--data-dir", dir, "run",
		"--height", "60", "--width", "60", "--min-radius", "5", "--max-radius", "10")
	require.NoError(t, err)
	require.Contains(t, out, "Has cancer (Microscope Image):")

	out, err = runApp(t, "--data-dir", dir, "inspect", "microscope.json")
	require.NoError(t, err)
	require.Contains(t, out, "encoding:    RLE")
	require.Contains(t, out, "cells:       3600")

	out, err = runApp(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, "1.0.0")

	out, err = runApp(t, "-V")
	require.NoError(t, err)
	require.Contains(t, out, "1.0.0")
}

func TestRunCommand_SmallBlob(t *testing.T) {
	out, err := runApp(t, "--data-dir", t.TempDir(), "run",
		"--height", "400", "--width", "400",
		"--min-radius", "10", "--max-radius", "20",
		"--seed", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Has cancer (Microscope Image): false\n")
	require.Contains(t, out, "Has cancer (Dye Sensor Image): false\n")
}

func TestInspectAndDecode(t *testing.T) {
	dir := t.TempDir()

	_, err := runApp(t, "--data-dir", dir, "run",
		"--height", "100", "--width", "120",
		"--min-radius", "10", "--max-radius", "40",
		"--format", "binary", "--compression", "lz4", "--store", "sqlite")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, sqliteFile))

	out, err := runApp(t, "--data-dir", dir, "inspect", "--store", "sqlite", "microscope.dsa")
	require.NoError(t, err)
	require.Contains(t, out, "format:      Binary")
	require.Contains(t, out, "encoding:    RLE")
	require.Contains(t, out, "shape:       100x120")
	require.Contains(t, out, "compression: LZ4")
	require.Contains(t, out, "cells:       12000")

	out, err = runApp(t, "--data-dir", dir, "decode", "--store", "sqlite", "--height", "100", "--width", "120", "dye_sensor.dsa")
	require.NoError(t, err)
	require.Contains(t, out, "of 12000 cells set")
	require.FileExists(t, filepath.Join(dir, "images", "dye_sensor.png"))

	_, err = runApp(t, "--data-dir", dir, "decode", "--store", "sqlite", "--height", "120", "--width", "100", "dye_sensor.dsa")
	require.Error(t, err)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := runApp(t, "--data-dir", dir, "run", "--format", "xml")
	require.Error(t, err)

	_, err = runApp(t, "--data-dir", dir, "run", "--store", "s3")
	require.Error(t, err)

	_, err = runApp(t, "--data-dir", dir, "inspect")
	require.Error(t, err)

	_, err = runApp(t, "--data-dir", dir, "inspect", "missing.json")
	require.Error(t, err)
}

func TestDataDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DYESCAN_DATA_DIR", dir)

	_, err := runApp(t, "run", "--height", "60", "--width", "60", "--min-radius", "5", "--max-radius", "10")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "microscope.json"))
	require.NoError(t, err)
}
