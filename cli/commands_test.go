package cli

import (
	"bytes"
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
)

// runCommand parses args against the full command tree and runs the
// selected command.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var cli Commands
	var stdout, stderr bytes.Buffer

	parser, err := kong.New(&cli,
		kong.Name("spendlog"),
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	assert.NoError(t, err)

	err = ctx.Run(&cli.Globals)
	return stdout.String(), stderr.String(), err
}

func writeRecords(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "records.txt")
	assert.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func exitCode(err error) int {
	var cmdErr *CommandError
	if stdErrors.As(err, &cmdErr) {
		return cmdErr.ExitCode()
	}
	return -1
}

func TestAddCmd(t *testing.T) {
	filename := writeRecords(t, "Balance: 100\n")

	stdout, _, err := runCommand(t, "--file", filename, "add", "meal lunch -10,", "bonus gift 5")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "Records saved to")
	assert.Equal(t, "meal lunch -10\nbonus gift 5\nBalance: 100\n", readFile(t, filename))

	_, stderr, err := runCommand(t, "--file", filename, "add", "pets dog 5")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr, `invalid category "pets"`)
}

func TestViewCmd(t *testing.T) {
	filename := writeRecords(t, "meal lunch -10\nsalary june 100\nBalance: 100\n")

	stdout, _, err := runCommand(t, "--file", filename, "view")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "Now you have 190 dollars.")
}

func TestDeleteCmd(t *testing.T) {
	filename := writeRecords(t, "meal lunch -10\nmeal lunch -20\nBalance: 100\n")

	_, _, err := runCommand(t, "--file", filename, "delete", "lunch")
	assert.NoError(t, err)
	assert.Equal(t, "meal lunch -10\nBalance: 100\n", readFile(t, filename))

	_, stderr, err := runCommand(t, "--file", filename, "delete", "dinner")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr, "Record not found.")
}

func TestFindCmd(t *testing.T) {
	filename := writeRecords(t, "meal lunch -10\nbus ticket -3\nsalary june 100\nBalance: 100\n")

	stdout, _, err := runCommand(t, "--file", filename, "find", "expense")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "lunch")
	assert.Contains(t, stdout, "ticket")
	assert.NotContains(t, stdout, "june")
	assert.Contains(t, stdout, "The total amount above is -13 dollars.")
}

func TestCategoriesCmd(t *testing.T) {
	stdout, _, err := runCommand(t, "categories")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "  transport\n    bus\n    railway\n")
}

func TestCheckCmd(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		filename := writeRecords(t, "meal lunch -10\nBalance: 100\n")

		stdout, _, err := runCommand(t, "--file", filename, "check")
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Check passed: 1 record(s), balance 90")
	})

	t.Run("Problems", func(t *testing.T) {
		filename := writeRecords(t, "meal lunch ten\npets dog 5\nBalance: 100\n")

		_, stderr, err := runCommand(t, "--file", filename, "check")
		assert.Equal(t, 1, exitCode(err))
		assert.Contains(t, stderr, "invalid amount")
		assert.Contains(t, stderr, `invalid category "pets"`)
		assert.Contains(t, stderr, "2 problem(s) found")
	})

	t.Run("JSON", func(t *testing.T) {
		filename := writeRecords(t, "pets dog 5\nBalance: 100\n")

		stdout, _, err := runCommand(t, "--file", filename, "check", "--format=json")
		assert.Equal(t, 1, exitCode(err))
		assert.Contains(t, stdout, `"type": "unknown_category"`)
	})

	t.Run("Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "records.txt")

		_, stderr, err := runCommand(t, "--file", filename, "check")
		assert.Equal(t, 1, exitCode(err))
		assert.Contains(t, stderr, "does not exist")
	})
}

func TestExportCmd(t *testing.T) {
	filename := writeRecords(t, "meal lunch -10\nsalary june 100\nBalance: 100\n")
	dbPath := filepath.Join(t.TempDir(), "export", "spendlog.db")

	stdout, _, err := runCommand(t, "--file", filename, "export", "--db", dbPath)
	assert.NoError(t, err)
	assert.Contains(t, stdout, "Exported 2 record(s)")
	assert.Contains(t, stdout, "(snapshot 1)")

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestDoctorCmd(t *testing.T) {
	filename := writeRecords(t, "meal lunch -10\nBalance: 100\n")

	t.Run("Tokens", func(t *testing.T) {
		stdout, _, err := runCommand(t, "--file", filename, "doctor", "tokens")
		assert.NoError(t, err)
		assert.Contains(t, stdout, `WORD       1:1    "meal"`)
		assert.Contains(t, stdout, `INTEGER    1:12    "-10"`)
		assert.Contains(t, stdout, `BALANCE    2:1    "Balance:"`)
	})

	t.Run("Dump", func(t *testing.T) {
		stdout, _, err := runCommand(t, "--file", filename, "doctor", "dump")
		assert.NoError(t, err)
		assert.Contains(t, stdout, `Category: "meal"`)
		assert.Contains(t, stdout, "Balance: 100")
	})

	t.Run("DumpCategories", func(t *testing.T) {
		stdout, _, err := runCommand(t, "doctor", "dump", "--categories")
		assert.NoError(t, err)
		assert.Contains(t, stdout, "group  expense\n")
		assert.Contains(t, stdout, "    leaf   meal\n")
	})
}
