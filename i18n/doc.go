// Package i18n holds the localized, user facing messages returned by the auth store.
//
// Messages are registered in an x/text catalog for every supported language;
// a Printer resolves the closest supported language for a requested tag.
package i18n
