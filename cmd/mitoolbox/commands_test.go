// cmd/mitoolbox/commands_test.go
package mitoolbox

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/mitoolbox/cli"
	"github.com/mwiater/mitoolbox/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// xorDataset has two independent fair features whose XOR is the label.
func xorDataset(t *testing.T) string {
	return writeDataset(t,
		"a\tb\tclass",
		"0\t0\t0",
		"0\t1\t1",
		"1\t0\t1",
		"1\t1\t0",
	)
}

func TestProbCmd(t *testing.T) {
	path := writeDataset(t, "1\t0", "1\t0", "2\t1", "2\t1")

	out, err := executeCommand(t, "prob", path)
	require.NoError(t, err)
	assert.Contains(t, out, "f0")
	assert.Contains(t, out, "0.500000")
	assert.Contains(t, out, "1.000000")

	out, err = executeCommand(t, "prob", path, "--json")
	require.NoError(t, err)

	var got pmfOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, pmfOutput{
		Column:    "f0",
		Values:    []float64{1, 2},
		PMF:       []float64{0.5, 0.5},
		NumStates: 2,
		Entropy:   1,
	}, got)
}

func TestProbCmd_Errors(t *testing.T) {
	path := writeDataset(t, "1\t0")

	_, err := executeCommand(t, "prob", path, "--column", "3")
	assert.Error(t, err)

	_, err = executeCommand(t, "prob", filepath.Join(t.TempDir(), "missing.tsv"))
	assert.Error(t, err)

	_, err = executeCommand(t, "prob")
	assert.Error(t, err)
}

func TestJointCmd(t *testing.T) {
	path := writeDataset(t, "1\t5", "1\t6", "2\t5", "2\t6")

	out, err := executeCommand(t, "joint", path, "--json")
	require.NoError(t, err)

	var got struct {
		First          string    `json:"first"`
		Second         string    `json:"second"`
		JointPMF       []float64 `json:"JointPMF"`
		NumJointStates uint32    `json:"NumJointStates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "f0", got.First)
	assert.Equal(t, "label", got.Second)
	assert.Equal(t, uint32(4), got.NumJointStates)
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, got.JointPMF)

	out, err = executeCommand(t, "joint", path)
	require.NoError(t, err)
	assert.Contains(t, out, "f0 × label")
	assert.Contains(t, out, "0.250000")
}

func TestEntropyCmd(t *testing.T) {
	path := xorDataset(t)

	out, err := executeCommand(t, "entropy", path)
	require.NoError(t, err)
	assert.Contains(t, out, "H(a) = 1.000000")

	out, err = executeCommand(t, "entropy", path, "--header", "--column", "-1", "--given", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "H(class|a) = 1.000000")
}

func TestMICmd(t *testing.T) {
	path := xorDataset(t)

	out, err := executeCommand(t, "mi", path, "--header")
	require.NoError(t, err)
	assert.Contains(t, out, "I(a;class) = 0.000000")

	out, err = executeCommand(t, "mi", path, "--header", "--given", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "I(a;class|b) = 1.000000")
}

func TestSelectCmd(t *testing.T) {
	path := writeDataset(t,
		"noise\tsignal\tclass",
		"1\t0\t0",
		"2\t0\t0",
		"1\t1\t1",
		"2\t1\t1",
	)

	out, err := executeCommand(t, "select", path, "--header", "--count", "10", "--json")
	require.NoError(t, err)

	var got []struct {
		Feature int     `json:"feature"`
		Score   float64 `json:"score"`
		Name    string  `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "signal", got[0].Name)
	assert.InDelta(t, 1.0, got[0].Score, 1e-12)
	assert.Equal(t, 0, got[1].Feature)

	out, err = executeCommand(t, "select", path, "--header", "--criterion", "cmim", "--count", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "signal")
	assert.NotContains(t, out, "noise")

	_, err = executeCommand(t, "select", path, "--header", "--criterion", "bogus")
	assert.Error(t, err)
}

func TestSelectCmd_BetaGamma(t *testing.T) {
	path := writeDataset(t,
		"a\tcopy\tb\tclass",
		"0\t0\t0\t0",
		"0\t0\t0\t0",
		"0\t0\t1\t0",
		"0\t0\t1\t1",
		"1\t1\t0\t1",
		"1\t1\t0\t1",
		"1\t1\t1\t1",
		"1\t1\t1\t1",
	)
	order := func(args ...string) []string {
		t.Helper()
		out, err := executeCommand(t, append([]string{"select", path, "--header", "--count", "3", "--json"}, args...)...)
		require.NoError(t, err)
		var got []struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		names := make([]string, len(got))
		for i, g := range got {
			names[i] = g.Name
		}
		return names
	}

	assert.Equal(t, []string{"a", "b", "copy"}, order("--criterion", "betagamma"))
	assert.Equal(t, []string{"a", "copy", "b"}, order("--criterion", "betagamma", "--beta", "0", "--gamma", "0"))
	assert.Equal(t, []string{"a", "b", "copy"}, order("--criterion", "mrmr"))
}

func TestGenerateCmd(t *testing.T) {
	out, err := executeCommand(t, "generate", "--observations", "4", "--features", "3", "--relevant", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Len(t, strings.Split(line, "\t"), 4)
	}

	path := filepath.Join(t.TempDir(), "uniform.tsv")
	_, err = executeCommand(t, "generate", "--observations", "2000", "--features", "6", "--relevant", "2", "--seed", "3", "-o", path)
	require.NoError(t, err)

	ds, err := dataset.Load(path, dataset.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2000, ds.Observations())
	assert.Len(t, ds.Features, 6)

	out, err = executeCommand(t, "select", path, "--count", "2", "--json")
	require.NoError(t, err)
	var got []struct {
		Feature int `json:"feature"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []int{0, 1}, []int{got[0].Feature, got[1].Feature})

	_, err = executeCommand(t, "generate", "--relevant", "60")
	assert.Error(t, err)
}

func TestPlotCmd(t *testing.T) {
	path := writeDataset(t, "1\t5", "1\t6", "2\t5", "2\t6")
	dir := t.TempDir()

	bar := filepath.Join(dir, "bar.html")
	_, err := executeCommand(t, "plot", path, "--out", bar, "--title", "column zero")
	require.NoError(t, err)
	b, err := os.ReadFile(bar)
	require.NoError(t, err)
	assert.Contains(t, string(b), "column zero")

	heat := filepath.Join(dir, "heat.html")
	_, err = executeCommand(t, "plot", path, "--out", heat, "--second", "-1")
	require.NoError(t, err)
	b, err = os.ReadFile(heat)
	require.NoError(t, err)
	assert.Contains(t, string(b), "heatmap")
}

func TestBenchCmd(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("bench:\n  sizes: [64]\n  states: [2, 4]\n  trials: 1\n  warmup: false\n"), 0o644))

	out, err := executeCommand(t, "bench", "--config", conf, "--json")
	require.NoError(t, err)

	var got struct {
		Trials    []json.RawMessage `json:"trials"`
		Summaries []struct {
			Size   int `json:"size"`
			States int `json:"states"`
		} `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Trials, 4)
	require.Len(t, got.Summaries, 4)
	for _, s := range got.Summaries {
		assert.Equal(t, 64, s.Size)
	}
}

func TestExploreCmd(t *testing.T) {
	path := xorDataset(t)

	orig := startGUI
	defer func() { startGUI = orig }()

	var gotDS *dataset.Dataset
	var gotOpts cli.Options
	startGUI = func(ds *dataset.Dataset, opts cli.Options) error {
		gotDS = ds
		gotOpts = opts
		return nil
	}

	_, err := executeCommand(t, "explore", path, "--header", "--base", "10")
	require.NoError(t, err)
	require.NotNil(t, gotDS)
	assert.Equal(t, []string{"a", "b"}, gotDS.Names)
	assert.Equal(t, path, gotOpts.Title)
	assert.Equal(t, 10.0, gotOpts.Base)
}

func TestListColumnsCmd(t *testing.T) {
	path := xorDataset(t)

	out, err := executeCommand(t, "list", "columns", path, "--header")
	require.NoError(t, err)
	assert.Contains(t, out, "index")
	assert.Contains(t, out, "a ")
	assert.Contains(t, out, "class")
	assert.Contains(t, out, "-1")
}
