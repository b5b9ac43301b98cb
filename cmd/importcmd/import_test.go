package importcmd_test

import (
	"testing"

	"github.com/Te4g/financial-tracker/cmd/importcmd"

	"github.com/stretchr/testify/assert"
)

func TestImportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "import", importcmd.Cmd.Use)
	assert.Contains(t, importcmd.Cmd.Short, "Import bank statement CSV files")
	assert.Contains(t, importcmd.Cmd.Long, "semicolon-delimited")
	assert.NotNil(t, importcmd.Cmd.Run)
}

func TestImportCommand_Flags(t *testing.T) {
	dirFlag := importcmd.Cmd.Flags().Lookup("dir")
	assert.NotNil(t, dirFlag)
	assert.Equal(t, "", dirFlag.DefValue)
}
