package model

import (
	"fmt"
	"strings"

	"github.com/oneconcern/revmon/pkg/core/status"
)

const (
	systemsPrefix  = "systems/"
	systemDocument = "system.txt"
)

// GetArchivePathToSystem yields the key of the serialized document of a named system
func GetArchivePathToSystem(name string) string {
	return fmt.Sprint(systemsPrefix, name, "/", systemDocument)
}

// GetArchivePathPrefixToSystems yields the common key prefix of all archived systems
func GetArchivePathPrefixToSystems() string {
	return systemsPrefix
}

// GetSystemNameFromArchivePath yields the name of a system from the key of its document.
// It returns false if the key does not point to a system document.
func GetSystemNameFromArchivePath(key string) (string, bool) {
	// as in: systems/{name}/system.txt
	cs := strings.Split(strings.TrimPrefix(key, "/"), "/")
	if len(cs) != 3 || cs[0]+"/" != systemsPrefix || cs[2] != systemDocument || cs[1] == "" {
		return "", false
	}
	return cs[1], true
}

// ValidateSystemName checks the name under which a system is archived
func ValidateSystemName(name string) error {
	if err := checkField("system name", name, true); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) {
		return status.ErrInvalidArgument.Wrapf("invalid name: system name %q contains a path separator", name)
	}
	return nil
}
