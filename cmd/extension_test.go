package cmd

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	// 1. Create a temporary directory
	tempDir := t.TempDir()

	// 2. Create spt-hello executable
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%s\n", strings.Join(os.Args[1:], ","))
}
`, EnvStore, EnvStore, EnvBackend, EnvBackend, EnvCurrency, EnvCurrency, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "spt-hello")

	// Write source to a temporary file
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write spt-hello source: %v", err)
	}

	// Compile spt-hello
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile spt-hello: %v", err)
	}
	log.Printf("Compiled spt-hello to %s", helloCmdPath)

	// 3. Compile the main spt binary
	sptBinaryPath := filepath.Join(tempDir, "spt")
	cmd = exec.Command("go", "build", "-o", sptBinaryPath, "../spt")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile spt binary: %v", err)
	}

	expectedStore := filepath.Join(tempDir, "portfolios.db")

	// 4. Call spt binary with extension and global flags
	args := []string{
		"-store", expectedStore,
		"-backend", "sqlite",
		"-currency", "usd",
		"-v",
		"hello", // The extension subcommand
		"world",
	}

	sptCmd := exec.Command(sptBinaryPath, args...)
	sptCmd.Dir = tempDir
	sptCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	sptCmd.Stdout = &stdout
	sptCmd.Stderr = &stderr

	if err := sptCmd.Run(); err != nil {
		t.Fatalf("spt hello failed: %v\nstdout:\n%s\nstderr:\n%s", err, stdout.String(), stderr.String())
	}

	// 5. Assert the extension received the resolved configuration.
	for _, want := range []string{
		EnvStore + "=" + expectedStore,
		EnvBackend + "=sqlite",
		EnvCurrency + "=USD",
		EnvVerbose + "=true",
		"args=world",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("spt hello output does not contain %q:\n%s", want, stdout.String())
		}
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("nope", nil); found || code != 0 {
		t.Errorf("RunExtension(nope) = %v, %d, want false, 0", found, code)
	}
}
