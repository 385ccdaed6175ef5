package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBinaryPath string

func TestMain(m *testing.M) {
	tempBinary := filepath.Join(os.TempDir(), "stereotype-test-"+fmt.Sprintf("%d", time.Now().UnixNano()))

	buildCmd := exec.Command("go", "build", "-o", tempBinary, ".")
	var buildOut bytes.Buffer
	buildCmd.Stdout = &buildOut
	buildCmd.Stderr = &buildOut
	if err := buildCmd.Run(); err != nil {
		fmt.Printf("failed to build stereotype for testing: %v\nbuild output: %s\n", err, buildOut.String())
		os.Exit(1)
	}
	testBinaryPath = tempBinary

	code := m.Run()
	os.Remove(testBinaryPath)
	os.Exit(code)
}

const fixtureArchive = `<?xml version="1.0"?>
<archive>
<unit language="C++" xmlns:src="http://www.srcML.org/srcML/src">
	<src:class>
		<src:name>Stack</src:name>
		<src:block>
			<src:private>
				<src:decl_stmt><src:decl><src:type><src:name>int</src:name></src:type><src:name>top</src:name></src:decl></src:decl_stmt>
			</src:private>
			<src:public>
				<src:function>
					<src:type><src:name>int</src:name></src:type>
					<src:name>getTop</src:name>
					<src:parameter_list></src:parameter_list>
					<src:block><src:block_content>
						<src:return>return <src:expr><src:name>top</src:name></src:expr>;</src:return>
					</src:block_content></src:block>
				</src:function>
			</src:public>
		</src:block>
	</src:class>
</unit>
</archive>`

func TestClassifyCommandAnnotatesArchive(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xml")
	out := filepath.Join(dir, "out.xml")
	require.NoError(t, os.WriteFile(in, []byte(fixtureArchive), 0o644))

	cmd := exec.Command(testBinaryPath, "classify", "--input", in, "--output", out)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), "stderr: %s", stderr.String())

	outBytes, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(outBytes), `stereotype="get`)
}

func TestClassifyCommandRequiresInputAndOutput(t *testing.T) {
	cmd := exec.Command(testBinaryPath, "classify")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "input")
}

func TestReportCommandSummarisesAnnotatedArchives(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xml")
	out := filepath.Join(dir, "out.xml")
	require.NoError(t, os.WriteFile(in, []byte(fixtureArchive), 0o644))

	classify := exec.Command(testBinaryPath, "classify", "--input", in, "--output", out)
	require.NoError(t, classify.Run())

	report := exec.Command(testBinaryPath, "report", "--glob", filepath.Join(dir, "*.xml"))
	var stdout bytes.Buffer
	report.Stdout = &stdout
	require.NoError(t, report.Run())
	assert.Contains(t, stdout.String(), "methods:")
}
