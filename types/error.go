package types

import "errors"

var (
	ErrNotImplemented = errors.New("not implemented")

	ErrNotFound = errors.New("not found")

	ErrArtifactNotFound = errors.New("artifact not found")

	ErrNoBytecode = errors.New("artifact has no bytecode")

	ErrUnlinkedLibrary = errors.New("artifact bytecode has unlinked libraries")

	ErrMissingEnv = errors.New("missing environment variable")

	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	ErrInvalidBalance = errors.New("invalid balance")

	ErrVerifyMismatch = errors.New("deployed contract state mismatch")

	ErrUnknownMigration = errors.New("unknown migration")
)
