// Package scripts registers the climbing components with the engine's script
// registry so scene and prefab files can name them.
package scripts
