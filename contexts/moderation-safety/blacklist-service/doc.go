// Package blacklistservice manages the blacklist: named entries that user
// content must not contain.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package blacklistservice
