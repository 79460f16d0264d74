// Package config loads adapter settings from TOML.
//
// A minimal file:
//
//	[log]
//	level = "debug"
//	encoding = "console"
//
//	[memory]
//	allocator = "native"
//	track_leaks = true
//
//	[platform]
//	backend = "headless"
//
//	[[platform.screens]]
//	name = "left"
//	width = 1920
//	height = 1080
//	primary = true
//
// Missing keys keep the values from Default. The shared library reads the
// file named by NATIVE_ADAPTER_CONFIG on first use.
package config
