// Package matcher reconciles a reference catalog against a local catalog.
//
// # Normalization
//
// [NormalizeTitle] and [NormalizeArtist] project raw metadata into a comparable form:
// lowercase, NFC composed, "&" spelled as "and", featured-artist credits stripped from titles,
// a leading "the " and honorific punctuation stripped from artists.
// Digits and non-ASCII letters are never removed.
//
// # Scoring
//
// [Similarity] is Jaro-Winkler over runes. Two records are similar when the normalized titles and the
// normalized artists each score at least [AcceptanceThreshold] and carry the same numbers.
//
// # Classification
//
// [CommonSongs], [ReferenceOnlySongs] and [LocalOnlySongs] are independent scans.
// CommonSongs is a greedy, order-dependent matching where each local record satisfies at most one reference record;
// the two one-sided scans ignore that bookkeeping. The three sets therefore do not partition either catalog:
// a reference record can be absent from both Common and ReferenceOnly when its only local match was consumed earlier.
//
// [BestEffortMissing] is a looser, averaged variant that reports the best score found for each missing reference record.
package matcher
