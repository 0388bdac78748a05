// Package model provides the data structures shared by the pipeline packages.
// It defines the stage descriptors used across the pipeline,
// and the option contract implemented by the drawer and measure features.
package model
