// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, places, reviews, and the rating
// aggregation shared by every read path. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
