// Package service contains the business rules of the lab platform.
//
// Services validate input, apply defaults and delegate storage to the
// repository interfaces declared next to them. The experiment, user and
// progress services are independent: none calls another and references
// between records are not checked.
//
// All services are safe for concurrent use when their repositories are.
package service
