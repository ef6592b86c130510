// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the blog API.
//
// Commands are read one per line, so a session started with "login" stays
// active for the following commands until "logout" or the end of input.
package client
