package encrypt

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftloom/photofs/cmd/util"
	"github.com/driftloom/photofs/pkg/errors"
	"github.com/driftloom/photofs/pkg/pathenc"
)

// passwordEnvKey is the environment variable consulted when --password isn't
// given, so the password doesn't have to appear in shell history.
const passwordEnvKey = "PHOTOFS_FOLDER_PASSWORD"

type encryptCmd struct {
	folderID    string
	password    string
	showFileKey bool
}

// New creates a new `encrypt` command.
func New() *cobra.Command {
	var cmd encryptCmd
	cobraCmd := &cobra.Command{
		Use:   "encrypt [name] ...",
		Short: "Derive the encrypted wire path for plaintext file names",
		Long: "Derive the deterministic, length-bounded encrypted path for each given\n" +
			"plaintext name, using the key for the given folder and password.\n" +
			"The mapping is one-way; there is no decrypt counterpart.",
		Run: func(_ *cobra.Command, args []string) {
			if err := cmd.run(args); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cobraCmd.Flags().StringVarP(&cmd.folderID, "folder", "f", "",
		"Identifier of the encrypted folder")
	cobraCmd.Flags().StringVarP(&cmd.password, "password", "p", "",
		"Folder password (defaults to $"+passwordEnvKey+")")
	cobraCmd.Flags().BoolVarP(&cmd.showFileKey, "file-key", "k", false,
		"Also print the derived per-file content key")
	return cobraCmd
}

func (e *encryptCmd) run(names []string) error {
	if len(names) == 0 {
		return errors.NewFriendlyError("Provide at least one plaintext name to encrypt.")
	}
	if e.folderID == "" {
		return errors.NewFriendlyError("The --folder flag is required.")
	}

	password := e.password
	if password == "" {
		password = os.Getenv(passwordEnvKey)
	}
	if password == "" {
		return errors.NewFriendlyError(
			"No folder password given. Pass --password or set $%s.", passwordEnvKey)
	}

	key, err := pathenc.FolderKey(e.folderID, password)
	if err != nil {
		return errors.WithContext(err, "derive folder key")
	}

	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, pathenc.EncryptedPath(name, key))
		if e.showFileKey {
			fileKey, err := pathenc.FileKeyBase32(name, key)
			if err != nil {
				return errors.WithContext(err, "derive file key")
			}
			fmt.Printf("%s\tfile key: %s\n", name, fileKey)
		}
	}
	return nil
}
