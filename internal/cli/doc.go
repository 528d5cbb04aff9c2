// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the command-line entry points of preventivatore.
//
// # Commands
//
//   - preventivatore          full-screen chat when attached to a terminal,
//     line mode otherwise
//   - preventivatore chat     line-mode chat with input history
//   - preventivatore quote    one-shot price calculation from flags
//   - preventivatore config   show, path, init, get and set
//   - preventivatore version  build information
//
// # Usage
//
//	if err := cli.Execute(); err != nil {
//	    os.Exit(1)
//	}
//
// Logs go to ~/.preventivatore/preventivatore.log unless log.file says
// otherwise; the terminal belongs to the chat.
package cli
