package tree

import (
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/driftloom/photofs/cmd/util"
	"github.com/driftloom/photofs/pkg/entry"
	"github.com/driftloom/photofs/pkg/errors"
	"github.com/driftloom/photofs/pkg/library"
	"github.com/driftloom/photofs/pkg/projection"
)

type treeCmd struct {
	configPath  string
	libraryPath string
	watch       bool
}

// New creates a new `tree` command.
func New() *cobra.Command {
	var cmd treeCmd
	cobraCmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the directory tree projected from a configuration",
		Long: "Project the albums in the given configuration against a directory-backed\n" +
			"library and print the resulting tree. This is the same tree the\n" +
			"synchronization engine walks when the projection is mounted.",
		Run: func(_ *cobra.Command, args []string) {
			if err := cmd.run(); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "",
		"Path to the projection configuration file (YAML or JSON)")
	cobraCmd.Flags().StringVarP(&cmd.libraryPath, "library", "l", ".",
		"Path to the directory-backed photo library")
	cobraCmd.Flags().BoolVarP(&cmd.watch, "watch", "w", false,
		"Keep running and reprint the tree when the library changes")
	return cobraCmd
}

func (t *treeCmd) run() error {
	if t.configPath == "" {
		return errors.NewFriendlyError("The --config flag is required.")
	}

	libraryPath, err := homedir.Expand(t.libraryPath)
	if err != nil {
		return errors.WithContext(err, "expand homedir")
	}

	config, err := projection.LoadFile(t.configPath)
	if err != nil {
		return errors.WithContext(err, "load configuration")
	}

	configID, err := config.Encode()
	if err != nil {
		return errors.WithContext(err, "encode configuration")
	}

	counter := &library.ChangeCounter{}
	lib := library.NewDirectoryLibrary(libraryPath)

	// Register the provider the same way the host engine would, and look it
	// up by its type tag.
	registry := projection.NewRegistry()
	registry.Register(projection.TypeTag,
		projection.NewAlbumRootProvider(lib, counter, clockwork.NewRealClock()))
	provider, _ := registry.Provider(projection.TypeTag)

	root, err := provider.Root(configID)
	if err != nil {
		return errors.WithContext(err, "build root")
	}

	printTree(os.Stdout, root, "")
	if !t.watch {
		return nil
	}

	updates, watcher, err := library.Watch(libraryPath, counter)
	if err != nil {
		return errors.WithContext(err, "watch library")
	}
	defer watcher.Close()

	for range updates {
		fmt.Println()
		printTree(os.Stdout, root, "")
	}
	return nil
}

// printTree walks an entry recursively. Failures below a directory only
// suppress that subtree; siblings still print.
func printTree(w io.Writer, e entry.Entry, indent string) {
	if !e.IsDirectory() {
		fmt.Fprintf(w, "%s%s\n", indent, e.Name())
		return
	}

	name := e.Name()
	if name == "" {
		name = "."
	}
	fmt.Fprintf(w, "%s%s/\n", indent, name)

	count, err := e.ChildCount()
	if err != nil {
		log.WithError(err).WithField("directory", name).Warn("Failed to list directory")
		return
	}
	for i := 0; i < count; i++ {
		child, err := e.Child(i)
		if err != nil {
			log.WithError(err).WithField("directory", name).Warn("Failed to get child")
			return
		}
		printTree(w, child, indent+"  ")
	}
}
