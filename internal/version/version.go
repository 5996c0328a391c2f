package version

// CurrentVersionConstant is the semantic version of the standards tool.
const CurrentVersionConstant = "1.2.0"
