// Package environment loads the project's dotenv file into an immutable key/value mapping.
package environment
