// Package sectioners selects and hosts the format-specific sectioners.
// A sectioner turns raw source bytes into the ordered (heading, content)
// pairs the revision pipeline anchors and stores; everything about a
// format beyond that contract stays inside its subpackage.
package sectioners
